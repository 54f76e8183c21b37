package views

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tardis/internal/client/api"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

var errBadAge = errors.New("age must be a non-negative number")

type Signup struct {
	app.Compo

	login        string
	password     string
	name         string
	race         string
	age          string
	relationship string
	appearance   string
	personality  string
	reason       string

	busy bool
	err  string
}

func (s *Signup) Render() app.UI {
	extra := []app.UI{}
	switch s.relationship {
	case "doctor":
		extra = append(extra,
			field("Appearance", "text", s.appearance, s.ValueTo(&s.appearance)),
			field("Personality", "text", s.personality, s.ValueTo(&s.personality)),
		)
	case "enemy":
		extra = append(extra, field("Reason", "text", s.reason, s.ValueTo(&s.reason)))
	}

	form := []app.UI{
		field("Login", "text", s.login, s.ValueTo(&s.login)),
		field("Password", "password", s.password, s.ValueTo(&s.password)),
		field("Character name", "text", s.name, s.ValueTo(&s.name)),
		field("Race", "text", s.race, s.ValueTo(&s.race)),
		field("Age", "number", s.age, s.ValueTo(&s.age)),
		app.Label().Class("field").Body(
			app.Span().Text("Relationship"),
			app.Select().OnChange(s.ValueTo(&s.relationship)).Body(
				relationshipOption("companion", s.relationship),
				relationshipOption("doctor", s.relationship),
				relationshipOption("enemy", s.relationship),
			),
		),
	}
	form = append(form, extra...)
	form = append(form, app.Button().Type("submit").Disabled(s.busy).Text("Sign up"))

	return page("Sign up",
		app.Form().OnSubmit(s.onSubmit).Body(form...),
		errorLine(s.err),
		app.P().Body(app.Text("Already registered? "), link("login", "Log in")),
	)
}

func relationshipOption(value, current string) app.UI {
	return app.Option().Value(value).Selected(value == current).Text(value)
}

func (s *Signup) request() (api.SignupRequest, error) {
	age, err := strconv.Atoi(strings.TrimSpace(s.age))
	if err != nil || age < 0 {
		return api.SignupRequest{}, errBadAge
	}
	if s.relationship == "" {
		s.relationship = "companion"
	}
	req := api.SignupRequest{
		Login:        strings.TrimSpace(s.login),
		Password:     s.password,
		Name:         strings.TrimSpace(s.name),
		Race:         strings.TrimSpace(s.race),
		Age:          age,
		Relationship: s.relationship,
	}
	switch s.relationship {
	case "doctor":
		req.Appearance, req.Personality = s.appearance, s.personality
	case "enemy":
		req.Reason = s.reason
	}
	return req, nil
}

func (s *Signup) onSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()

	req, err := s.request()
	if err != nil {
		s.err = err.Error()
		return
	}

	_, c := state(ctx)
	s.busy, s.err = true, ""
	fetch(ctx, func(rctx context.Context) (int64, error) {
		return c.Signup(rctx, req)
	}, func(_ int64, err error) {
		s.busy = false
		if err != nil {
			s.err = errText(err)
			return
		}
		navigate(ctx, pathFor("login"))
	})
}
