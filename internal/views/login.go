package views

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/tardis/internal/session"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

var errEmptyCredentials = errors.New("login and password are required")

type Login struct {
	app.Compo

	login    string
	password string
	busy     bool
	err      string
}

func (l *Login) Render() app.UI {
	return page("Log in",
		app.Form().OnSubmit(l.onSubmit).Body(
			field("Login", "text", l.login, l.ValueTo(&l.login)),
			field("Password", "password", l.password, l.ValueTo(&l.password)),
			app.Button().Type("submit").Disabled(l.busy).Text("Log in"),
		),
		errorLine(l.err),
		app.P().Body(app.Text("No account yet? "), link("signup", "Sign up")),
	)
}

func (l *Login) onSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if l.login == "" || l.password == "" {
		l.err = errEmptyCredentials.Error()
		return
	}

	s, c := state(ctx)
	login, password := l.login, l.password
	l.busy, l.err = true, ""

	var token string
	fetch(ctx, func(rctx context.Context) (*session.User, error) {
		pair, err := c.Login(rctx, login, password)
		if err != nil {
			return nil, err
		}
		token = pair.AccessToken
		return c.MeWithToken(rctx, token)
	}, func(u *session.User, err error) {
		l.busy = false
		if err != nil {
			l.err = errText(err)
			return
		}
		if err := s.Login(u, token); err != nil {
			logger.Warn(context.Background(), "save session failed", "error", err)
		}
		l.password = ""
		navigate(ctx, pathFor("main"))
	})
}
