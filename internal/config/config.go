package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CONFAUDIT_*). A missing file is not an
// error; defaults still apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// CONFAUDIT_TARGET -> target, CONFAUDIT_SORT_BY -> sort_by, etc.
	if err := k.Load(env.Provider("CONFAUDIT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CONFAUDIT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validSortKeys is the set of recognized version sort keys.
var validSortKeys = map[string]bool{
	"version": true,
	"tag":     true,
}

// validFormats is the set of recognized output formats.
var validFormats = map[string]bool{
	"text":     true,
	"json":     true,
	"markdown": true,
	"html":     true,
}

// MissingRequired returns the names of required settings that are unset.
// The caller decides how to report them (usage text, HTTP error, ...).
func (c *Config) MissingRequired() []string {
	var missing []string
	if c.Target == "" {
		missing = append(missing, "target")
	}
	if c.Cluster == "" {
		missing = append(missing, "cluster")
	}
	if c.User == "" {
		missing = append(missing, "user")
	}
	if c.ConfigType == "" {
		missing = append(missing, "config")
	}
	return missing
}

// Validate checks that the configuration contains valid values. It does not
// check required fields; see MissingRequired.
func (c *Config) Validate() error {
	if c.SortBy != "" && !validSortKeys[c.SortBy] {
		return fmt.Errorf("invalid sort_by %q: must be one of version, tag", c.SortBy)
	}
	if c.Format != "" && !validFormats[c.Format] {
		return fmt.Errorf("invalid format %q: must be one of text, json, markdown, html", c.Format)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("invalid serve port %d", c.Serve.Port)
	}
	return nil
}

// PasswordFromEnv returns the API password from the environment, or an empty
// string if unset. Used to bypass the interactive prompt in non-interactive
// runs. The password deliberately has no koanf mapping so it can never be
// written back out by Save.
func PasswordFromEnv() string {
	return os.Getenv("CONFAUDIT_PASSWORD")
}
