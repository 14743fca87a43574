package config

import (
	"fmt"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the result to
// the given path. The password is intentionally not part of the wizard: it is
// prompted per run and never persisted.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to confaudit! Let's configure your cluster connection.")
	fmt.Println()

	cfg := DefaultConfig()

	targetPrompt := promptui.Prompt{
		Label: "Cluster-management host (host[:port])",
	}
	target, err := targetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	cfg.Target = target

	clusterPrompt := promptui.Prompt{
		Label: "Cluster name",
	}
	cluster, err := clusterPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	cfg.Cluster = cluster

	userPrompt := promptui.Prompt{
		Label:   "API username",
		Default: "admin",
	}
	user, err := userPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("user: %w", err)
	}
	cfg.User = user

	schemePrompt := promptui.Select{
		Label: "Connection scheme",
		Items: []string{"http", "https"},
	}
	schemeIdx, _, err := schemePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("scheme: %w", err)
	}
	cfg.HTTPS = schemeIdx == 1

	configPrompt := promptui.Prompt{
		Label: "Default configuration type to audit (e.g. yarn-site, leave blank for none)",
	}
	configType, err := configPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("config type: %w", err)
	}
	cfg.ConfigType = configType

	formatPrompt := promptui.Select{
		Label: "Output format",
		Items: []string{"text", "json", "markdown", "html"},
	}
	_, format, err := formatPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	cfg.Format = format

	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
