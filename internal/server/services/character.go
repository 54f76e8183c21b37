package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tardis/internal/common"
	"github.com/dmitrijs2005/tardis/internal/server/models"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/characters"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/repomanager"
)

// CharacterService serves the public character catalogue and portraits.
type CharacterService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	portraits   PortraitStorage
}

func NewCharacterService(db *sql.DB, m repomanager.RepositoryManager, portraits PortraitStorage) *CharacterService {
	return &CharacterService{db: db, repomanager: m, portraits: portraits}
}

// List returns characters matching f. An unknown relationship filter is a
// validation error rather than an empty result.
func (s *CharacterService) List(ctx context.Context, f characters.Filter) ([]models.Character, error) {
	if f.Relationship != "" && !models.ValidRelationship(f.Relationship) {
		return nil, fmt.Errorf("%w: unknown relationship %q", common.ErrorValidation, f.Relationship)
	}
	list, err := s.repomanager.Characters(s.db).List(ctx, f)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return list, nil
}

func (s *CharacterService) Get(ctx context.Context, id int64) (*models.CharacterDetails, error) {
	d, err := s.repomanager.Characters(s.db).Details(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return d, nil
}

// PortraitUploadURL reserves a new portrait key for characterID and returns
// it with a presigned PUT URL. Only the user playing the character may do this.
func (s *CharacterService) PortraitUploadURL(ctx context.Context, user *models.User, characterID int64, contentType string) (key, url string, err error) {
	if user.CharacterID != characterID {
		if _, err := s.Get(ctx, characterID); err != nil {
			return "", "", err
		}
		return "", "", common.ErrorForbidden
	}

	key = PortraitKey(characterID)
	url, err = s.portraits.PresignPut(ctx, key, contentType)
	if err != nil {
		return "", "", fmt.Errorf("error presigning upload: %w", err)
	}

	if err := s.repomanager.Characters(s.db).SetPortraitKey(ctx, characterID, key); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", "", err
		}
		return "", "", common.ErrorInternal
	}
	return key, url, nil
}

// PortraitURL returns a presigned GET URL for the character's portrait, or
// common.ErrorNotFound when the character has none.
func (s *CharacterService) PortraitURL(ctx context.Context, characterID int64) (string, error) {
	d, err := s.Get(ctx, characterID)
	if err != nil {
		return "", err
	}
	if d.PortraitKey == "" {
		return "", common.ErrorNotFound
	}
	url, err := s.portraits.PresignGet(ctx, d.PortraitKey)
	if err != nil {
		return "", fmt.Errorf("error presigning download: %w", err)
	}
	return url, nil
}
