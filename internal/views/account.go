package views

import (
	"strconv"

	"github.com/dmitrijs2005/tardis/internal/session"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

type Account struct {
	app.Compo

	user *session.User
}

func (a *Account) OnNav(ctx app.Context) {
	requireUser(ctx, func(u *session.User) { a.user = u })
}

func (a *Account) Render() app.UI {
	if a.user == nil {
		return page("Account", loading())
	}
	return page("Account",
		app.Dl().Body(
			app.Dt().Text("User ID"), app.Dd().Text(strconv.FormatInt(a.user.ID, 10)),
			app.Dt().Text("Login"), app.Dd().Text(a.user.Login),
			app.Dt().Text("Character"), app.Dd().Body(
				app.A().Href(characterHref(a.user.CharacterID)).Text(a.user.CharacterName),
			),
		),
		app.Button().OnClick(a.onLogout).Text("Log out"),
	)
}

func (a *Account) onLogout(ctx app.Context, e app.Event) {
	s, c := state(ctx)
	s.Logout()
	c.SetRefreshToken("")
	a.user = nil
	navigate(ctx, pathFor("welcome"))
}
