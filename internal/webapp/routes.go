// Package webapp wires the views into go-app: the route table shared by the
// wasm client and the server-side handler, plus the web server config.
package webapp

import (
	"github.com/dmitrijs2005/tardis/internal/router"
	"github.com/dmitrijs2005/tardis/internal/views"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// Factory builds a fresh view component for a route.
type Factory = func() app.Composer

// Routes returns the route table of the front end.
func Routes() *router.Table[Factory] {
	return router.MustNew(
		router.Route[Factory]{Path: "/", Name: "welcome", Component: func() app.Composer { return &views.Welcome{} }},
		router.Route[Factory]{Path: "/login", Name: "login", Component: func() app.Composer { return &views.Login{} }},
		router.Route[Factory]{Path: "/signup", Name: "signup", Component: func() app.Composer { return &views.Signup{} }},
		router.Route[Factory]{Path: "/main", Name: "main", Component: func() app.Composer { return &views.Main{} }},
		router.Route[Factory]{Path: "/account", Name: "account", Component: func() app.Composer { return &views.Account{} }},
		router.Route[Factory]{Path: "/battles", Name: "battles", Component: func() app.Composer { return &views.Battles{} }},
		router.Route[Factory]{Path: "/character", Name: "character", Component: func() app.Composer { return &views.Character{} }},
		router.Route[Factory]{Path: "/history", Name: "history", Component: func() app.Composer { return &views.History{} }},
		router.Route[Factory]{Path: "/msg-page", Name: "msg-page", Component: func() app.Composer { return &views.MsgPage{} }},
		router.Route[Factory]{Path: "/msg", Name: "msg", Component: func() app.Composer { return &views.Msg{} }},
		router.Route[Factory]{Path: "/recent", Name: "recent", Component: func() app.Composer { return &views.Recent{} }},
		router.Route[Factory]{Path: "/search", Name: "search", Component: func() app.Composer { return &views.Search{} }},
	)
}

// Register makes every route known to go-app and to the views' links.
// It must run on both sides: in the browser before app.RunWhenOnBrowser and
// on the server before the handler serves pages.
func Register(t *router.Table[Factory]) {
	for _, r := range t.Routes() {
		app.Route(r.Path, r.Component)
	}
	views.UseLinks(t)
}
