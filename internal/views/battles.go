package views

import (
	"context"

	"github.com/dmitrijs2005/tardis/internal/client/api"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// Battles lists the known enemies.
type Battles struct {
	app.Compo

	enemies []api.Character
	loaded  bool
	err     string
}

func (b *Battles) OnNav(ctx app.Context) {
	_, c := state(ctx)
	b.loaded, b.err = false, ""
	fetch(ctx, func(rctx context.Context) ([]api.Character, error) {
		return c.Characters(rctx, "", "enemy")
	}, func(list []api.Character, err error) {
		b.enemies, b.loaded, b.err = list, true, errText(err)
	})
}

func (b *Battles) Render() app.UI {
	if !b.loaded {
		return page("Battles", loading())
	}
	if b.err != "" {
		return page("Battles", errorLine(b.err))
	}
	return page("Battles", characterTable(b.enemies))
}
