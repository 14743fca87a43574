package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/clustertools/confaudit/internal/config"
)

// loadConfig resolves the effective configuration: defaults, then the config
// file and CONFAUDIT_* environment, then any flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("target") {
		cfg.Target, _ = fl.GetString("target")
	}
	if fl.Changed("cluster") {
		cfg.Cluster, _ = fl.GetString("cluster")
	}
	if fl.Changed("user") {
		cfg.User, _ = fl.GetString("user")
	}
	if fl.Changed("https") {
		cfg.HTTPS, _ = fl.GetBool("https")
	}
	if fl.Changed("insecure") {
		cfg.Insecure, _ = fl.GetBool("insecure")
	}
	if fl.Changed("timeout") {
		cfg.Timeout, _ = fl.GetDuration("timeout")
	}
	if fl.Changed("config") {
		cfg.ConfigType, _ = fl.GetString("config")
	}
	if fl.Changed("output") {
		cfg.Output, _ = fl.GetString("output")
	}
	if fl.Changed("format") {
		cfg.Format, _ = fl.GetString("format")
	}
	if fl.Changed("match") {
		cfg.Match, _ = fl.GetString("match")
	}
	if fl.Changed("sort-by") {
		cfg.SortBy, _ = fl.GetString("sort-by")
	}

	return cfg, nil
}

// promptPassword asks for the API password without echoing it. The
// CONFAUDIT_PASSWORD environment variable bypasses the prompt for
// non-interactive runs.
func promptPassword() (string, error) {
	if pw := config.PasswordFromEnv(); pw != "" {
		return pw, nil
	}
	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
	}
	pw, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("password prompt: %w", err)
	}
	return pw, nil
}
