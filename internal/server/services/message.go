package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tardis/internal/common"
	"github.com/dmitrijs2005/tardis/internal/server/models"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/repomanager"
)

type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMessageService(db *sql.DB, m repomanager.RepositoryManager) *MessageService {
	return &MessageService{db: db, repomanager: m}
}

// Send delivers body from the user to toUserID. An unknown recipient yields
// common.ErrorNotFound.
func (s *MessageService) Send(ctx context.Context, from *models.User, toUserID int64, body string) (int64, error) {
	if toUserID <= 0 {
		return 0, fmt.Errorf("%w: to_user_id must be positive", common.ErrorValidation)
	}
	if strings.TrimSpace(body) == "" {
		return 0, fmt.Errorf("%w: message is required", common.ErrorValidation)
	}

	ok, err := s.repomanager.Users(s.db).Exists(ctx, toUserID)
	if err != nil {
		return 0, common.ErrorInternal
	}
	if !ok {
		return 0, common.ErrorNotFound
	}

	m, err := s.repomanager.Messages(s.db).Create(ctx, &models.Message{FromUserID: from.ID, ToUserID: toUserID, Body: body})
	if err != nil {
		return 0, common.ErrorInternal
	}
	return m.ID, nil
}

// Inbox lists messages addressed to the user.
func (s *MessageService) Inbox(ctx context.Context, user *models.User) ([]models.Message, error) {
	list, err := s.repomanager.Messages(s.db).Inbox(ctx, user.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return list, nil
}
