package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clustertools/confaudit/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a confaudit config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
