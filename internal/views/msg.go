package views

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tardis/internal/session"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

var errBadMessage = errors.New("recipient must be a positive user id and the message cannot be empty")

// Msg sends a message to another user.
type Msg struct {
	app.Compo

	user *session.User
	to   string
	body string
	busy bool
	sent string
	err  string
}

func (m *Msg) OnNav(ctx app.Context) {
	requireUser(ctx, func(u *session.User) { m.user = u })
	if to := ctx.Page().URL().Query().Get("to"); to != "" {
		m.to = to
	}
}

func (m *Msg) Render() app.UI {
	if m.user == nil {
		return page("Send a message", loading())
	}
	body := []app.UI{
		app.Form().OnSubmit(m.onSubmit).Body(
			field("Recipient user ID", "number", m.to, m.ValueTo(&m.to)),
			app.Label().Class("field").Body(
				app.Span().Text("Message"),
				app.Textarea().Text(m.body).OnChange(m.ValueTo(&m.body)),
			),
			app.Button().Type("submit").Disabled(m.busy).Text("Send"),
		),
		errorLine(m.err),
	}
	if m.sent != "" {
		body = append(body, app.P().Class("ok").Text(m.sent))
	}
	return page("Send a message", body...)
}

func (m *Msg) onSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()

	to, err := strconv.ParseInt(strings.TrimSpace(m.to), 10, 64)
	text := strings.TrimSpace(m.body)
	if err != nil || to <= 0 || text == "" {
		m.err, m.sent = errBadMessage.Error(), ""
		return
	}

	_, c := state(ctx)
	m.busy, m.err, m.sent = true, "", ""
	fetch(ctx, func(rctx context.Context) (int64, error) {
		return c.SendMessage(rctx, to, text)
	}, func(_ int64, err error) {
		m.busy = false
		if err != nil {
			m.err = errText(err)
			return
		}
		m.body, m.sent = "", "Message sent."
	})
}
