package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clustertools/confaudit/internal/ambari"
	"github.com/clustertools/confaudit/internal/audit"
	"github.com/clustertools/confaudit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the configuration audit as an HTTP JSON API",
	Long: `Starts an HTTP server exposing GET /api/v1/audit?type=<config-type>, which
runs the same fetch-and-diff pass as the CLI and returns the events as JSON.
The API password is read once at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// The config type comes per request here, so only the connection
		// settings are required.
		var missing []string
		for _, name := range cfg.MissingRequired() {
			if name != "config" {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
			return &UsageError{msg: "missing required flags: " + strings.Join(missing, ", ")}
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
			return &UsageError{msg: err.Error()}
		}

		password, err := promptPassword()
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		if port, _ := cmd.Flags().GetInt("port"); cmd.Flags().Changed("port") {
			cfg.Serve.Port = port
		}
		if allowAll, _ := cmd.Flags().GetBool("allow-all-origins"); cmd.Flags().Changed("allow-all-origins") {
			cfg.Serve.AllowAll = allowAll
		}

		client := ambari.NewClient(ambari.Options{
			Host:     cfg.Target,
			User:     cfg.User,
			Password: password,
			UseHTTPS: cfg.HTTPS,
			Insecure: cfg.Insecure,
			Timeout:  cfg.Timeout,
		})
		runner := &audit.Runner{
			Client:  client,
			Cluster: cfg.Cluster,
			SortBy:  ambari.SortKey(cfg.SortBy),
		}

		srv := server.New(server.Config{
			Port:     cfg.Serve.Port,
			AllowAll: cfg.Serve.AllowAll,
		}, runner)

		slog.Info("audit API listening",
			"port", cfg.Serve.Port,
			"cluster", cfg.Cluster,
			"host", cfg.Target)
		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().Int("port", 8484, "port to listen on")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}
