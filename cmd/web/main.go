package main

import (
	"log"
	"net/http"
	"os"

	"github.com/dmitrijs2005/tardis/internal/buildinfo"
	"github.com/dmitrijs2005/tardis/internal/webapp"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

func main() {
	webapp.Register(webapp.Routes())

	// In the browser this starts the UI and never returns.
	app.RunWhenOnBrowser()

	buildinfo.PrintBuildData(os.Stdout)

	cfg := webapp.LoadConfig()
	http.Handle("/", webapp.Handler(cfg))

	log.Printf("web front end listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		log.Fatalf("%v", err)
	}
}
