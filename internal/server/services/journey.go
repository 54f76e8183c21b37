package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tardis/internal/common"
	"github.com/dmitrijs2005/tardis/internal/dbx"
	"github.com/dmitrijs2005/tardis/internal/server/models"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/repomanager"
)

// AddJourneyInput is the body of /add_journey.
type AddJourneyInput struct {
	Planet      int64
	Time        string
	Doctor      int64
	Description string
}

func (in *AddJourneyInput) Validate() error {
	if strings.TrimSpace(in.Time) == "" {
		return fmt.Errorf("%w: time is required", common.ErrorValidation)
	}
	return nil
}

type JourneyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewJourneyService(db *sql.DB, m repomanager.RepositoryManager) *JourneyService {
	return &JourneyService{db: db, repomanager: m}
}

// List returns the journeys of the user's character.
func (s *JourneyService) List(ctx context.Context, user *models.User) ([]models.Journey, error) {
	list, err := s.repomanager.Journeys(s.db).ListByCharacter(ctx, user.CharacterID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return list, nil
}

// Add records a journey of the user's character. The time point, the journey
// and the participation row are written in one transaction.
func (s *JourneyService) Add(ctx context.Context, user *models.User, in AddJourneyInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (int64, error) {
		repo := s.repomanager.Journeys(tx)

		tp, err := repo.CreateTimePoint(ctx, &models.TimePoint{Universe: in.Time, Planet: in.Time})
		if err != nil {
			return 0, fmt.Errorf("failed to create journey: %w", err)
		}

		j, err := repo.Create(ctx, &models.Journey{
			PlanetID:    in.Planet,
			TimeID:      tp.ID,
			DoctorID:    in.Doctor,
			Description: in.Description,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to create journey: %w", err)
		}

		if err := repo.AddCharacter(ctx, user.CharacterID, j.ID); err != nil {
			return 0, fmt.Errorf("failed to create journey: %w", err)
		}
		return j.ID, nil
	})
}
