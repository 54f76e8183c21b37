// Package journeys declares the repository contract for journeys and
// their time points.
package journeys

import (
	"context"

	"github.com/dmitrijs2005/tardis/internal/server/models"
)

type Repository interface {
	CreateTimePoint(ctx context.Context, tp *models.TimePoint) (*models.TimePoint, error)
	Create(ctx context.Context, j *models.Journey) (*models.Journey, error)
	AddCharacter(ctx context.Context, characterID, journeyID int64) error
	// ListByCharacter returns the journeys characterID took part in, newest first.
	ListByCharacter(ctx context.Context, characterID int64) ([]models.Journey, error)
}
