package config

import "time"

// DefaultConfig returns a Config with sensible defaults. Insecure defaults
// to true because cluster-management endpoints almost universally run with
// self-signed certificates; pass --insecure=false to verify.
func DefaultConfig() *Config {
	return &Config{
		Insecure: true,
		Timeout:  30 * time.Second,
		SortBy:   "version",
		Format:   "text",
		Serve: ServeConfig{
			Port: 8484,
		},
	}
}
