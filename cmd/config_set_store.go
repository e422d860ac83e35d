package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/PolarWolf314/kanote/internal/configs"
	"github.com/PolarWolf314/kanote/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	ConfigCmd.AddCommand(configSetStoreCmd)
}

var configSetStoreCmd = &cobra.Command{
	Use:   "set-store <path>",
	Short: "Set the default store location",
	Long: `Records the default store directory in the user config. The --store flag
and $KANOTE_STORE still take precedence.

Pass an empty string to go back to the default data directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config set-store command")

		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load user config: %v", err)
		}

		path := args[0]
		if path != "" {
			path, err = filepath.Abs(path)
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to resolve %s: %v", args[0], err)
			}
		}
		ConfigLogger.Debugf("Setting store path from %q to %q", userConfig.Store.Path, path)

		userConfig.Store.Path = path
		if err := configs.SaveUserConfig(userConfig); err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to save user config: %v", err)
		}

		if path == "" {
			fmt.Println(ui.Success.Sprint("✓") + " Store path reset to " + ui.Path.Sprint(configs.UserKanoteSettings.DefaultStorePath))
			return nil
		}
		fmt.Println(ui.Success.Sprint("✓") + " Store path set to " + ui.Path.Sprint(path))
		return nil
	},
}
