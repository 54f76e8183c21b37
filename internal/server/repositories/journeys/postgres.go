package journeys

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tardis/internal/dbx"
	"github.com/dmitrijs2005/tardis/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateTimePoint(ctx context.Context, tp *models.TimePoint) (*models.TimePoint, error) {
	query := `
		INSERT INTO time_points (universe, planet)
		VALUES ($1, $2)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, tp.Universe, tp.Planet).Scan(&tp.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tp, nil
}

func (r *PostgresRepository) Create(ctx context.Context, j *models.Journey) (*models.Journey, error) {
	query := `
		INSERT INTO journeys (planet_id, time_id, doctor_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, j.PlanetID, j.TimeID, j.DoctorID, j.Description).Scan(&j.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

func (r *PostgresRepository) AddCharacter(ctx context.Context, characterID, journeyID int64) error {
	query := `
		INSERT INTO character_in_journey (character_id, journey_id)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, characterID, journeyID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByCharacter(ctx context.Context, characterID int64) ([]models.Journey, error) {
	query := `
		SELECT j.id, j.planet_id, j.time_id, t.universe, j.doctor_id, j.description
		FROM journeys j
		JOIN character_in_journey cj ON cj.journey_id = j.id
		JOIN time_points t ON t.id = j.time_id
		WHERE cj.character_id = $1
		ORDER BY j.id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, characterID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Journey, 0)
	for rows.Next() {
		var j models.Journey
		if err := rows.Scan(&j.ID, &j.PlanetID, &j.TimeID, &j.Time, &j.DoctorID, &j.Description); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
