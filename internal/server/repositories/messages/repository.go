// Package messages declares the repository contract for user-to-user messages.
package messages

import (
	"context"

	"github.com/dmitrijs2005/tardis/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Message) (*models.Message, error)
	// Inbox lists messages addressed to userID, newest first.
	Inbox(ctx context.Context, userID int64) ([]models.Message, error)
}
