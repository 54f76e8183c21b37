package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tardis/internal/flagx"
	"github.com/dmitrijs2005/tardis/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	HealthEndpointAddr  string         `json:"health_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	StorageFile         string         `json:"storage_file"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Keys missing from the file keep their current values.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.HealthEndpointAddr != "" {
		cfg.HealthEndpointAddr = jc.HealthEndpointAddr
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.StorageFile != "" {
		cfg.StorageFile = jc.StorageFile
	}
}
