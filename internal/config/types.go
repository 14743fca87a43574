package config

import "time"

// Config is the resolved confaudit configuration: defaults, overlaid by
// .confaudit.yml, then CONFAUDIT_* environment variables, then command-line
// flags.
type Config struct {
	Target     string        `yaml:"target" koanf:"target"` // host[:port]
	Cluster    string        `yaml:"cluster" koanf:"cluster"`
	User       string        `yaml:"user" koanf:"user"`
	ConfigType string        `yaml:"config" koanf:"config"` // e.g. "yarn-site"
	Output     string        `yaml:"output" koanf:"output"` // empty: stdout
	HTTPS      bool          `yaml:"https" koanf:"https"`
	Insecure   bool          `yaml:"insecure" koanf:"insecure"`
	Timeout    time.Duration `yaml:"timeout" koanf:"timeout"`
	SortBy     string        `yaml:"sort_by" koanf:"sort_by"`
	Format     string        `yaml:"format" koanf:"format"`
	Match      string        `yaml:"match" koanf:"match"`
	Serve      ServeConfig   `yaml:"serve" koanf:"serve"`
}

// ServeConfig holds settings for the HTTP serve mode.
type ServeConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"` // allow all CORS origins
}
