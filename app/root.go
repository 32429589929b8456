// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/admidio-bridge/admidio-bridge/internal/config"
)

var (
	configPath string // Path to the configuration directory
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "admidio-bridge",
		Short: "admidio-bridge authenticates host logins against an Admidio membership database",
		Long: `admidio-bridge verifies credentials against an external Admidio
membership database, provisions matching users in the host identity store
and keeps their group memberships in sync on every login.`,
		Args: cobra.OnlyValidArgs,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration directory (default ./etc/)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
