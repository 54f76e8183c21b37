// Package characters declares the repository contract for characters,
// their races and their doctor/enemy detail rows.
package characters

import (
	"context"

	"github.com/dmitrijs2005/tardis/internal/server/models"
)

// Filter narrows List. Zero values mean "no filter".
type Filter struct {
	// Query is a case-insensitive substring of the character name.
	Query        string
	Relationship string
}

type Repository interface {
	// FindOrCreateRace returns the id of the race called name, inserting it when missing.
	FindOrCreateRace(ctx context.Context, name string) (int64, error)
	Create(ctx context.Context, c *models.Character) (*models.Character, error)
	CreateDoctor(ctx context.Context, d *models.Doctor) error
	CreateEnemy(ctx context.Context, e *models.Enemy) error
	List(ctx context.Context, f Filter) ([]models.Character, error)
	// Details returns common.ErrorNotFound for an unknown id.
	Details(ctx context.Context, id int64) (*models.CharacterDetails, error)
	SetPortraitKey(ctx context.Context, id int64, key string) error
}
