// Package views holds the go-app components of the web front end. They are
// thin: each one renders a page, calls the REST API through api.HTTPClient
// and records authentication in the shared session.Store.
package views

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/tardis/internal/client/api"
	"github.com/dmitrijs2005/tardis/internal/logging"
	"github.com/dmitrijs2005/tardis/internal/session"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// APIURLEnv is the wasm environment variable holding the API base URL.
const APIURLEnv = "API_URL"

const requestTimeout = 12 * time.Second

var (
	stateOnce sync.Once
	store     *session.Store
	client    *api.HTTPClient

	logger logging.Logger = logging.NewText(os.Stderr, slog.LevelInfo).With("module", "views")

	navigate = func(ctx app.Context, path string) { ctx.Navigate(path) }
)

// state returns the page-wide session and API client, creating them on first
// use with the browser's local storage.
func state(ctx app.Context) (*session.Store, *api.HTTPClient) {
	stateOnce.Do(func() {
		store = session.New(ctx.LocalStorage())
		if err := store.Restore(); err != nil {
			logger.Error(context.Background(), "restore session failed", "error", err)
		}
		client = api.NewHTTPClient(app.Getenv(APIURLEnv), store)
	})
	return store, client
}

// fetch runs get off the UI goroutine and hands the result to apply on it.
func fetch[T any](ctx app.Context, get func(context.Context) (T, error), apply func(T, error)) {
	ctx.Async(func() {
		rctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		v, err := get(rctx)
		ctx.Dispatch(func(app.Context) {
			apply(v, err)
		})
	})
}

// requireUser calls then with the signed-in user. A restored token is
// checked against /users/me first; without a valid session the browser is
// sent to the login page.
func requireUser(ctx app.Context, then func(*session.User)) {
	s, c := state(ctx)

	if u, ok := s.User(); ok && s.Authenticated() {
		then(u)
		return
	}

	token, ok := s.Token()
	if !ok {
		navigate(ctx, pathFor("login"))
		return
	}

	fetch(ctx, c.Me, func(u *session.User, err error) {
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				s.Logout()
			}
			logger.Warn(context.Background(), "session check failed", "error", err)
			navigate(ctx, pathFor("login"))
			return
		}
		if err := s.Login(u, token); err != nil {
			logger.Error(context.Background(), "save session failed", "error", err)
		}
		then(u)
	})
}

// errText is what a failed call shows on the page.
func errText(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if errors.Is(err, api.ErrUnavailable) {
		return "The server is unavailable, please try again later."
	}
	return err.Error()
}
