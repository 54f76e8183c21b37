package views

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/tardis/internal/client/api"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

func characterHref(id int64) string {
	return pathFor("character") + "?id=" + strconv.FormatInt(id, 10)
}

// queryID reads a positive integer id from the query string.
func queryID(q url.Values) (int64, bool) {
	id, err := strconv.ParseInt(q.Get("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Character shows one character when the URL carries ?id=, otherwise the
// full list.
type Character struct {
	app.Compo

	details  *api.CharacterDetails
	portrait string
	list     []api.Character
	loaded   bool
	err      string
}

func (c *Character) OnNav(ctx app.Context) {
	_, client := state(ctx)
	c.details, c.portrait, c.list, c.loaded, c.err = nil, "", nil, false, ""

	id, ok := queryID(ctx.Page().URL().Query())
	if !ok {
		fetch(ctx, func(rctx context.Context) ([]api.Character, error) {
			return client.Characters(rctx, "", "")
		}, func(list []api.Character, err error) {
			c.list, c.loaded, c.err = list, true, errText(err)
		})
		return
	}

	type result struct {
		details  *api.CharacterDetails
		portrait string
	}
	fetch(ctx, func(rctx context.Context) (result, error) {
		d, err := client.Character(rctx, id)
		if err != nil || !d.HasPortrait {
			return result{details: d}, err
		}
		link, err := client.PortraitURL(rctx, id)
		if err != nil {
			logger.Warn(rctx, "portrait url failed", "id", id, "error", err)
		}
		return result{details: d, portrait: link}, nil
	}, func(r result, err error) {
		c.details, c.portrait, c.loaded, c.err = r.details, r.portrait, true, errText(err)
	})
}

func (c *Character) Render() app.UI {
	switch {
	case !c.loaded:
		return page("Characters", loading())
	case c.err != "":
		return page("Characters", errorLine(c.err))
	case c.details != nil:
		return page(c.details.Name, characterCard(c.details, c.portrait))
	default:
		return page("Characters", characterTable(c.list))
	}
}

func characterCard(d *api.CharacterDetails, portrait string) app.UI {
	rows := []app.UI{
		app.Dt().Text("Race"), app.Dd().Text(d.Race),
		app.Dt().Text("Age"), app.Dd().Text(strconv.Itoa(d.Age)),
		app.Dt().Text("State"), app.Dd().Text(d.State),
		app.Dt().Text("Relationship"), app.Dd().Text(d.Relationship),
	}
	if d.Appearance != "" {
		rows = append(rows, app.Dt().Text("Appearance"), app.Dd().Text(d.Appearance))
	}
	if d.Personality != "" {
		rows = append(rows, app.Dt().Text("Personality"), app.Dd().Text(d.Personality))
	}
	if d.Reason != "" {
		rows = append(rows, app.Dt().Text("Reason"), app.Dd().Text(d.Reason))
	}

	body := []app.UI{}
	if portrait != "" {
		body = append(body, app.Img().Class("portrait").Src(portrait).Alt(d.Name))
	}
	body = append(body, app.Dl().Body(rows...))
	return app.Div().Class("character").Body(body...)
}

func characterTable(list []api.Character) app.UI {
	if len(list) == 0 {
		return app.P().Text("No characters found.")
	}
	return app.Table().Body(
		app.Tr().Body(
			app.Th().Text("Name"),
			app.Th().Text("Age"),
			app.Th().Text("State"),
			app.Th().Text("Relationship"),
		),
		app.Range(list).Slice(func(i int) app.UI {
			ch := list[i]
			return app.Tr().Body(
				app.Td().Body(app.A().Href(characterHref(ch.ID)).Text(ch.Name)),
				app.Td().Text(strconv.Itoa(ch.Age)),
				app.Td().Text(ch.State),
				app.Td().Text(ch.Relationship),
			)
		}),
	)
}
