package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/admidio-bridge/admidio-bridge/internal/config"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(configCmd)
}

// configCmd prints the effective configuration, with defaults applied and
// store passwords redacted. Useful to verify env-JSON overrides.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.ReadConfig(configPath)
		if err != nil {
			return err
		}

		dump, err := config.DumpConfig(config.Redacted(c))
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), dump)

		return nil
	},
}
