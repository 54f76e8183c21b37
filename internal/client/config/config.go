package config

import "time"

// Config holds runtime settings for the TARDIS CLI.
//
// Fields:
//   - APIBaseURL: base URL of the REST API.
//   - HealthEndpointAddr: host:port of the server's gRPC health service.
//   - OnlineCheckInterval: how often the client checks server reachability.
//   - StorageFile: SQLite file holding the persisted session.
type Config struct {
	APIBaseURL          string
	HealthEndpointAddr  string
	OnlineCheckInterval time.Duration
	StorageFile         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.HealthEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.StorageFile = "tardis.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
