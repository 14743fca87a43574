package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clustertools/confaudit/internal/ambari"
	"github.com/clustertools/confaudit/internal/audit"
	"github.com/clustertools/confaudit/internal/progress"
	"github.com/clustertools/confaudit/internal/report"
)

var (
	cfgFile string
	verbose bool
)

// UsageError is a command-line usage problem. main maps it to exit code 2,
// distinct from runtime failures.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return e.msg }

var rootCmd = &cobra.Command{
	Use:   "confaudit",
	Short: "Audit configuration changes on a managed cluster",
	Long: `confaudit retrieves the historical versions of a configuration type from
an Ambari-style cluster-management REST API, compares consecutive versions,
and prints a change log of added, changed, and removed properties.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
	RunE: runAudit,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config-file", ".confaudit.yml", "config file path")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringP("target", "t", "", "cluster-management host[:port]")
	pf.StringP("cluster", "c", "", "cluster name")
	pf.StringP("user", "u", "", "API username")
	pf.BoolP("https", "s", false, "connect over HTTPS")
	pf.Bool("insecure", true, "skip TLS certificate verification")
	pf.Duration("timeout", 30*time.Second, "HTTP request timeout")

	f := rootCmd.Flags()
	f.String("config", "", "configuration type to audit (e.g. yarn-site)")
	f.StringP("output", "o", "", "output file (default: stdout)")
	f.String("format", "", "output format: text, json, markdown, html")
	f.String("match", "", "only report property keys matching this glob")
	f.String("sort-by", "", "version sort key: version or tag")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
		return &UsageError{msg: err.Error()}
	})
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if missing := cfg.MissingRequired(); len(missing) > 0 {
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

	slog.Info("audit initialized",
		"host", cfg.Target,
		"cluster", cfg.Cluster,
		"user", cfg.User,
		"password", "******",
		"config", cfg.ConfigType,
		"file", cfg.Output,
		"https", cfg.HTTPS)

	client := ambari.NewClient(ambari.Options{
		Host:     cfg.Target,
		User:     cfg.User,
		Password: password,
		UseHTTPS: cfg.HTTPS,
		Insecure: cfg.Insecure,
		Timeout:  cfg.Timeout,
	})

	runner := &audit.Runner{
		Client:   client,
		Cluster:  cfg.Cluster,
		SortBy:   ambari.SortKey(cfg.SortBy),
		Reporter: progress.NewReporter(),
	}

	events, warnings, err := runner.Run(cmd.Context(), cfg.ConfigType)
	if err != nil {
		return err
	}
	for _, warn := range warnings {
		slog.Warn("skipping configuration version",
			"version", warn.Descriptor.Version, "error", warn.Err)
	}

	events = audit.Filter(events, cfg.Match)

	if err := report.Write(events, cfg.Output, report.Format(cfg.Format)); err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}

	slog.Debug("audit complete", "events", len(events), "skipped", len(warnings))
	return nil
}
