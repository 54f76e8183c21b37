package webapp

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/dmitrijs2005/tardis/internal/flagx"
)

// Config holds the settings of the web front-end server.
type Config struct {
	ListenAddr string
	APIBaseURL string
}

func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8000"
	c.APIBaseURL = "http://127.0.0.1:8080"
}

type jsonConfig struct {
	ListenAddr string `json:"listen_addr"`
	APIBaseURL string `json:"api_base_url"`
}

// LoadConfig layers defaults, the optional JSON file (-c/-config) and flags.
// Panics on unreadable config.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

func parseJson(cfg *Config) {
	file := flagx.JsonConfigFlags()
	if file == "" {
		return
	}

	data, err := os.ReadFile(file)
	if err != nil {
		panic(err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ListenAddr != "" {
		cfg.ListenAddr = jc.ListenAddr
	}
	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
}

// parseFlags reads -a (listen address) and -u (API base URL).
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address to serve the web app on")
	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "base URL of the API server")

	if err := flagx.ParseOwn(fs, os.Args[1:]); err != nil {
		panic(err)
	}
}
