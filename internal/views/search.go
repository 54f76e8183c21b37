package views

import (
	"context"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/tardis/internal/client/api"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// Search looks characters up by name. The query lives in ?q= so results can
// be bookmarked.
type Search struct {
	app.Compo

	query   string
	results []api.Character
	loaded  bool
	err     string
}

func (s *Search) OnNav(ctx app.Context) {
	s.query = ctx.Page().URL().Query().Get("q")
	s.results, s.loaded, s.err = nil, false, ""
	if s.query == "" {
		return
	}

	_, c := state(ctx)
	q := s.query
	fetch(ctx, func(rctx context.Context) ([]api.Character, error) {
		return c.Characters(rctx, q, "")
	}, func(list []api.Character, err error) {
		s.results, s.loaded, s.err = list, true, errText(err)
	})
}

func (s *Search) Render() app.UI {
	body := []app.UI{
		app.Form().OnSubmit(s.onSubmit).Body(
			field("Name", "search", s.query, s.ValueTo(&s.query)),
			app.Button().Type("submit").Text("Search"),
		),
		errorLine(s.err),
	}
	if s.loaded && s.err == "" {
		body = append(body, characterTable(s.results))
	}
	return page("Search", body...)
}

func (s *Search) onSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()
	navigate(ctx, searchHref(s.query))
}

func searchHref(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return pathFor("search")
	}
	return pathFor("search") + "?" + url.Values{"q": {q}}.Encode()
}
