// Package api is the client side of the TARDIS REST API, shared by the web
// front end and the CLI, plus a gRPC health check for the CLI.
package api

import (
	"context"

	"github.com/dmitrijs2005/tardis/internal/session"
)

type Client interface {
	Signup(ctx context.Context, req SignupRequest) (int64, error)
	Login(ctx context.Context, login, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Me(ctx context.Context) (*session.User, error)
	MeWithToken(ctx context.Context, accessToken string) (*session.User, error)
	Characters(ctx context.Context, query, relationship string) ([]Character, error)
	Character(ctx context.Context, id int64) (*CharacterDetails, error)
	Journeys(ctx context.Context) ([]Journey, error)
	AddJourney(ctx context.Context, req AddJourneyRequest) (int64, error)
	Messages(ctx context.Context) ([]Message, error)
	SendMessage(ctx context.Context, toUserID int64, body string) (int64, error)
	PortraitUploadURL(ctx context.Context, characterID int64, contentType string) (*PortraitUpload, error)
	PortraitURL(ctx context.Context, characterID int64) (string, error)
}

// TokenStore supplies the bearer token and receives rotated ones.
// *session.Store implements it.
type TokenStore interface {
	Token() (string, bool)
	SetToken(token string) error
}
