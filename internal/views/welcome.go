package views

import "github.com/maxence-charriere/go-app/v10/pkg/app"

// Welcome is the landing page.
type Welcome struct {
	app.Compo
}

func (w *Welcome) Render() app.UI {
	return page("TARDIS",
		app.P().Text("Time travel companion log. Track your doctor, your enemies and where you have been."),
		app.Div().Class("actions").Body(
			link("login", "Log in"),
			link("signup", "Sign up"),
		),
	)
}
