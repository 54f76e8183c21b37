package views

import (
	"github.com/dmitrijs2005/tardis/internal/session"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

type menuItem struct {
	route string
	title string
}

var menu = []menuItem{
	{"character", "Characters"},
	{"search", "Search"},
	{"battles", "Battles"},
	{"history", "Journeys"},
	{"recent", "Recent journeys"},
	{"msg-page", "Inbox"},
	{"msg", "Send a message"},
	{"account", "Account"},
}

// Main is the signed-in home page.
type Main struct {
	app.Compo

	user *session.User
}

func (m *Main) OnNav(ctx app.Context) {
	requireUser(ctx, func(u *session.User) { m.user = u })
}

func (m *Main) Render() app.UI {
	if m.user == nil {
		return page("TARDIS", loading())
	}
	return page("Welcome aboard, "+m.user.Login,
		app.Ul().Class("menu").Body(
			app.Range(menu).Slice(func(i int) app.UI {
				return app.Li().Body(link(menu[i].route, menu[i].title))
			}),
		),
	)
}
