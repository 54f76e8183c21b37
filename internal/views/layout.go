package views

import "github.com/maxence-charriere/go-app/v10/pkg/app"

func page(title string, body ...app.UI) app.UI {
	return app.Div().Class("page").Body(
		app.Nav().Class("nav").Body(
			link("main", "Home"),
			link("character", "Characters"),
			link("search", "Search"),
			link("account", "Account"),
		),
		app.H1().Text(title),
		app.Div().Class("content").Body(body...),
	)
}

func link(name, text string) app.UI {
	return app.A().Href(pathFor(name)).Text(text)
}

func errorLine(msg string) app.UI {
	if msg == "" {
		return app.Text("")
	}
	return app.P().Class("error").Text(msg)
}

func field(label, typ, value string, h app.EventHandler) app.UI {
	return app.Label().Class("field").Body(
		app.Span().Text(label),
		app.Input().Type(typ).Value(value).OnChange(h),
	)
}

func loading() app.UI {
	return app.P().Class("loading").Text("Loading…")
}
