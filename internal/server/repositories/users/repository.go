// Package users declares the repository contract for user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/tardis/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills in its ID and CreatedAt. A taken login
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	// Profile returns the user joined with its character name.
	Profile(ctx context.Context, id int64) (*models.Profile, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
