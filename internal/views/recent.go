package views

import (
	"slices"

	"github.com/dmitrijs2005/tardis/internal/client/api"
	"github.com/dmitrijs2005/tardis/internal/session"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

const recentLimit = 5

// mostRecent returns up to n journeys, newest (highest id) first.
func mostRecent(list []api.Journey, n int) []api.Journey {
	out := slices.Clone(list)
	slices.SortFunc(out, func(a, b api.Journey) int {
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

type Recent struct {
	app.Compo

	journeys []api.Journey
	loaded   bool
	err      string
}

func (r *Recent) OnNav(ctx app.Context) {
	requireUser(ctx, func(*session.User) {
		_, c := state(ctx)
		fetch(ctx, c.Journeys, func(list []api.Journey, err error) {
			r.journeys, r.loaded, r.err = mostRecent(list, recentLimit), true, errText(err)
		})
	})
}

func (r *Recent) Render() app.UI {
	switch {
	case !r.loaded:
		return page("Recent journeys", loading())
	case r.err != "":
		return page("Recent journeys", errorLine(r.err))
	}
	return page("Recent journeys", journeyTable(r.journeys), link("history", "All journeys"))
}
