package views

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tardis/internal/client/api"
	"github.com/dmitrijs2005/tardis/internal/session"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

var errBadJourney = errors.New("planet and doctor must be numbers and time is required")

// History lists the journeys and lets the user record a new one.
type History struct {
	app.Compo

	journeys []api.Journey
	loaded   bool
	err      string

	planet      string
	doctor      string
	when        string
	description string
	busy        bool
	formErr     string
}

func (h *History) OnNav(ctx app.Context) {
	requireUser(ctx, func(*session.User) { h.load(ctx) })
}

func (h *History) load(ctx app.Context) {
	_, c := state(ctx)
	fetch(ctx, c.Journeys, func(list []api.Journey, err error) {
		h.journeys, h.loaded, h.err = list, true, errText(err)
	})
}

func (h *History) Render() app.UI {
	body := []app.UI{}
	switch {
	case !h.loaded:
		body = append(body, loading())
	case h.err != "":
		body = append(body, errorLine(h.err))
	default:
		body = append(body, journeyTable(h.journeys))
	}

	body = append(body,
		app.H2().Text("Add a journey"),
		app.Form().OnSubmit(h.onSubmit).Body(
			field("Planet ID", "number", h.planet, h.ValueTo(&h.planet)),
			field("Doctor ID", "number", h.doctor, h.ValueTo(&h.doctor)),
			field("Time", "text", h.when, h.ValueTo(&h.when)),
			app.Label().Class("field").Body(
				app.Span().Text("Description"),
				app.Textarea().Text(h.description).OnChange(h.ValueTo(&h.description)),
			),
			app.Button().Type("submit").Disabled(h.busy).Text("Add"),
		),
		errorLine(h.formErr),
	)
	return page("Journeys", body...)
}

func (h *History) request() (api.AddJourneyRequest, error) {
	planet, err := strconv.ParseInt(strings.TrimSpace(h.planet), 10, 64)
	if err != nil {
		return api.AddJourneyRequest{}, errBadJourney
	}
	doctor, err := strconv.ParseInt(strings.TrimSpace(h.doctor), 10, 64)
	if err != nil {
		return api.AddJourneyRequest{}, errBadJourney
	}
	when := strings.TrimSpace(h.when)
	if when == "" {
		return api.AddJourneyRequest{}, errBadJourney
	}
	return api.AddJourneyRequest{Planet: planet, Doctor: doctor, Time: when, Description: h.description}, nil
}

func (h *History) onSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()

	req, err := h.request()
	if err != nil {
		h.formErr = err.Error()
		return
	}

	_, c := state(ctx)
	h.busy, h.formErr = true, ""
	fetch(ctx, func(rctx context.Context) (int64, error) {
		return c.AddJourney(rctx, req)
	}, func(_ int64, err error) {
		h.busy = false
		if err != nil {
			h.formErr = errText(err)
			return
		}
		h.planet, h.doctor, h.when, h.description = "", "", "", ""
		h.load(ctx)
	})
}

func journeyTable(list []api.Journey) app.UI {
	if len(list) == 0 {
		return app.P().Text("No journeys yet.")
	}
	return app.Table().Body(
		app.Tr().Body(
			app.Th().Text("Time"),
			app.Th().Text("Planet"),
			app.Th().Text("Doctor"),
			app.Th().Text("Description"),
		),
		app.Range(list).Slice(func(i int) app.UI {
			j := list[i]
			return app.Tr().Body(
				app.Td().Text(j.Time),
				app.Td().Text(strconv.FormatInt(j.PlanetID, 10)),
				app.Td().Body(app.A().Href(characterHref(j.DoctorID)).Text(strconv.FormatInt(j.DoctorID, 10))),
				app.Td().Text(j.Description),
			)
		}),
	)
}
