// Package config loads runtime configuration for the TARDIS CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-g string   address:port of the gRPC health service
//	-i int      online status check interval (seconds)
//	-f string   local session storage file
//
// # JSON schema
//
// Intervals can be strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "health_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "storage_file": "tardis.db"
//	}
package config
