package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tardis/internal/client/api"
)

func (a *App) Journeys(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	list, err := a.api.Journeys(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No journeys yet")
		return nil
	}

	for _, j := range list {
		fmt.Fprintf(a.out, "#%d  planet %d at %s with doctor %d: %s\n", j.ID, j.PlanetID, j.Time, j.DoctorID, j.Description)
	}
	return nil
}

func (a *App) AddJourney(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	var req api.AddJourneyRequest
	var err error

	if req.Planet, err = getInt(a.reader, "Planet id", a.out); err != nil {
		return err
	}
	if req.Time, err = a.prompt("Time"); err != nil {
		return err
	}
	if req.Doctor, err = getInt(a.reader, "Doctor id", a.out); err != nil {
		return err
	}
	if req.Description, err = a.prompt("Description"); err != nil {
		return err
	}

	id, err := a.api.AddJourney(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Journey added successfully (id %d)\n", id)
	return nil
}
