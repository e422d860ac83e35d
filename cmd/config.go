package cmd

import (
	logger "github.com/PolarWolf314/kanote/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	configVerbose bool
	configDebug   bool
	ConfigLogger  logger.Logger

	// ConfigCmd is the top-level config command.
	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage Kanote configuration",
		Long: `Provides commands for managing the user configuration in
~/.config/kanote/config.toml.

Examples:
  # Show the current configuration and resolved store path
  kanote config show

  # Use a different default store
  kanote config set-store ~/Dropbox/notes

  # Change the key derivation cost for new stores
  kanote config set-iterations 400000`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ConfigLogger = logger.Logger{
				Verbose: configVerbose,
				Debug:   configDebug,
			}
			ConfigLogger.Debugf("Initializing config command with verbose=%t, debug=%t", configVerbose, configDebug)
		},
	}
)

func init() {
	ConfigCmd.PersistentFlags().BoolVarP(&configVerbose, "verbose", "v", false, "enable verbose output")
	ConfigCmd.PersistentFlags().BoolVarP(&configDebug, "debug", "d", false, "enable debug output")
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// ResetConfigState resets all config command global variables to their default values for testing.
func ResetConfigState() {
	configVerbose = false
	configDebug = false
	resetConfigShowState()
	resetConfigCobraFlagState()
}

// resetConfigCobraFlagState resets the flag state for all config commands to prevent test pollution.
func resetConfigCobraFlagState() {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	ConfigCmd.PersistentFlags().VisitAll(reset)
	for _, sub := range ConfigCmd.Commands() {
		sub.Flags().VisitAll(reset)
	}
}
