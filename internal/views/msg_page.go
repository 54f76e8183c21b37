package views

import (
	"strconv"

	"github.com/dmitrijs2005/tardis/internal/client/api"
	"github.com/dmitrijs2005/tardis/internal/session"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// MsgPage is the inbox.
type MsgPage struct {
	app.Compo

	messages []api.Message
	loaded   bool
	err      string
}

func (m *MsgPage) OnNav(ctx app.Context) {
	requireUser(ctx, func(*session.User) {
		_, c := state(ctx)
		fetch(ctx, c.Messages, func(list []api.Message, err error) {
			m.messages, m.loaded, m.err = list, true, errText(err)
		})
	})
}

func (m *MsgPage) Render() app.UI {
	switch {
	case !m.loaded:
		return page("Inbox", loading())
	case m.err != "":
		return page("Inbox", errorLine(m.err))
	case len(m.messages) == 0:
		return page("Inbox", app.P().Text("Your inbox is empty."), link("msg", "Send a message"))
	}

	return page("Inbox",
		app.Ul().Class("messages").Body(
			app.Range(m.messages).Slice(func(i int) app.UI {
				msg := m.messages[i]
				from := strconv.FormatInt(msg.FromUserID, 10)
				return app.Li().Body(
					app.P().Class("meta").Body(
						app.Text("From user "+from+" at "+msg.CreatedAt.Format("2006-01-02 15:04")+" "),
						app.A().Href(pathFor("msg")+"?to="+from).Text("Reply"),
					),
					app.P().Text(msg.Message),
				)
			}),
		),
	)
}
