package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/tardis/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the REST API
//	-g string   address and port of the gRPC health service
//	-i int      online check interval in seconds
//	-f string   local session storage file
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the API server")
	fs.StringVar(&cfg.HealthEndpointAddr, "g", cfg.HealthEndpointAddr, "address and port of the health service")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.StorageFile, "f", cfg.StorageFile, "local storage file")

	if err := flagx.ParseOwn(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
