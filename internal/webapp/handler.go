package webapp

import (
	"github.com/dmitrijs2005/tardis/internal/views"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// Handler serves the PWA shell and the wasm bundle.
func Handler(cfg *Config) *app.Handler {
	return &app.Handler{
		Name:        "TARDIS",
		ShortName:   "TARDIS",
		Title:       "TARDIS",
		Description: "Time travel companion log",
		Styles:      []string{"/web/app.css"},
		Env: map[string]string{
			views.APIURLEnv: cfg.APIBaseURL,
		},
	}
}
