// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login, issuing and refreshing JWTs plus
// server-stored refresh tokens, and resolving bearer tokens to users.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tardis/internal/common"
	"github.com/dmitrijs2005/tardis/internal/cryptox"
	"github.com/dmitrijs2005/tardis/internal/dbx"
	"github.com/dmitrijs2005/tardis/internal/server/auth"
	"github.com/dmitrijs2005/tardis/internal/server/config"
	"github.com/dmitrijs2005/tardis/internal/server/models"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SignupInput is everything needed to create a user together with its character.
type SignupInput struct {
	Login        string
	Password     string
	Name         string
	Race         string
	Age          int
	Relationship string
	Reason       string
	Appearance   string
	Personality  string
}

const defaultRace = "Unknown"

// Validate checks the fields required by /signup.
func (in *SignupInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Login) == "":
		return fmt.Errorf("%w: login is required", common.ErrorValidation)
	case in.Password == "":
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	case in.Age < 0:
		return fmt.Errorf("%w: age must not be negative", common.ErrorValidation)
	case !models.ValidRelationship(in.Relationship):
		return fmt.Errorf("%w: unknown relationship %q", common.ErrorValidation, in.Relationship)
	}
	return nil
}

// UserService provides authentication-related operations:
// - Signup: create users and their characters
// - Login: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
// - Authenticate: resolve an access token to a stored user
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Signup creates the race (if new), the character, its doctor or enemy row
// and the user in one transaction. A taken login yields common.ErrorAlreadyExists.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(in.Race) == "" {
		in.Race = defaultRace
	}

	hash, err := cryptox.HashPassword([]byte(in.Password))
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return 0, fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		return 0, common.ErrorInternal
	}

	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (int64, error) {
		usersRepo := s.repomanager.Users(tx)
		charRepo := s.repomanager.Characters(tx)

		_, err := usersRepo.GetUserByLogin(ctx, in.Login)
		if err == nil {
			return 0, common.ErrorAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return 0, fmt.Errorf("error checking login: %w", err)
		}

		raceID, err := charRepo.FindOrCreateRace(ctx, in.Race)
		if err != nil {
			return 0, fmt.Errorf("error creating race: %w", err)
		}

		character, err := charRepo.Create(ctx, &models.Character{
			Name:         in.Name,
			Age:          in.Age,
			State:        models.StateAlive,
			Relationship: in.Relationship,
			RaceID:       raceID,
		})
		if err != nil {
			return 0, fmt.Errorf("error creating character: %w", err)
		}

		switch in.Relationship {
		case models.RelationshipDoctor:
			err = charRepo.CreateDoctor(ctx, &models.Doctor{CharacterID: character.ID, Appearance: in.Appearance, Personality: in.Personality})
		case models.RelationshipEnemy:
			err = charRepo.CreateEnemy(ctx, &models.Enemy{CharacterID: character.ID, Reason: in.Reason})
		}
		if err != nil {
			return 0, fmt.Errorf("error creating character details: %w", err)
		}

		user, err := usersRepo.Create(ctx, &models.User{Login: in.Login, PasswordHash: hash, CharacterID: character.ID})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return 0, err
			}
			return 0, fmt.Errorf("error creating user: %w", err)
		}
		return user.ID, nil
	})
}

// Login verifies the password against the stored bcrypt hash and, on
// success, returns a new TokenPair. Unknown logins and wrong passwords both
// yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, login, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.BurnCompare([]byte(password))
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !cryptox.CheckPassword(user.PasswordHash, []byte(password)) {
		return nil, common.ErrorUnauthorized
	}
	return s.generateTokenPair(ctx, user, s.db)
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*TokenPair, error) {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return nil, fmt.Errorf("error deleting refresh token: %w", err)
		}
		return s.generateTokenPair(ctx, user, tx)
	})
}

// Authenticate resolves an access token to its user. A bad or expired token
// yields common.ErrInvalidToken; a valid token for a deleted user yields
// common.ErrorNotFound.
func (s *UserService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Me returns the profile of userID.
func (s *UserService) Me(ctx context.Context, userID int64) (*models.Profile, error) {
	p, err := s.repomanager.Users(s.db).Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return p, nil
}

// --- helpers below ---

func (s *UserService) generateAccessToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, user.Login, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, user *models.User, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if _, err := refreshRepo.DeleteExpired(ctx, user.ID); err != nil {
		return nil, common.ErrorInternal
	}
	if err := refreshRepo.Create(ctx, user.ID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
