package characters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tardis/internal/common"
	"github.com/dmitrijs2005/tardis/internal/dbx"
	"github.com/dmitrijs2005/tardis/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindOrCreateRace(ctx context.Context, name string) (int64, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	query := `
		INSERT INTO races (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Character) (*models.Character, error) {
	query := `
		INSERT INTO characters (name, age, state, relationship, race_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if c.State == "" {
		c.State = models.StateAlive
	}
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Age, c.State, c.Relationship, c.RaceID).Scan(&c.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	query := `
		INSERT INTO doctors (character_id, appearance, personality)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, d.CharacterID, d.Appearance, d.Personality); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateEnemy(ctx context.Context, e *models.Enemy) error {
	query := `
		INSERT INTO enemies (character_id, reason)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, e.CharacterID, e.Reason); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]models.Character, error) {
	query := `
		SELECT id, name, age, state, relationship, COALESCE(race_id, 0), portrait_key
		FROM characters
		WHERE ($1 = '' OR lower(name) LIKE '%' || lower($1) || '%')
		  AND ($2 = '' OR relationship = $2)
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, f.Query, f.Relationship)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Character, 0)
	for rows.Next() {
		var c models.Character
		if err := rows.Scan(&c.ID, &c.Name, &c.Age, &c.State, &c.Relationship, &c.RaceID, &c.PortraitKey); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Details(ctx context.Context, id int64) (*models.CharacterDetails, error) {
	query := `
		SELECT c.id, c.name, c.age, c.state, c.relationship, COALESCE(c.race_id, 0), c.portrait_key,
		       COALESCE(r.name, ''), u.id, d.appearance, d.personality, e.reason
		FROM characters c
		LEFT JOIN races r ON r.id = c.race_id
		LEFT JOIN users u ON u.character_id = c.id
		LEFT JOIN doctors d ON d.character_id = c.id
		LEFT JOIN enemies e ON e.character_id = c.id
		WHERE c.id = $1
	`
	var (
		det                     models.CharacterDetails
		userID                  sql.NullInt64
		appearance, personality sql.NullString
		reason                  sql.NullString
	)
	c := &det.Character
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Age, &c.State, &c.Relationship, &c.RaceID, &c.PortraitKey,
		&det.Race, &userID, &appearance, &personality, &reason,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if userID.Valid {
		det.UserID = &userID.Int64
	}
	if c.Relationship == models.RelationshipDoctor && (appearance.Valid || personality.Valid) {
		det.Doctor = &models.Doctor{CharacterID: c.ID, Appearance: appearance.String, Personality: personality.String}
	}
	if c.Relationship == models.RelationshipEnemy && reason.Valid {
		det.Enemy = &models.Enemy{CharacterID: c.ID, Reason: reason.String}
	}
	return &det, nil
}

func (r *PostgresRepository) SetPortraitKey(ctx context.Context, id int64, key string) error {
	query := `UPDATE characters SET portrait_key = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, key)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
