package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/kanote/internal/configs"
	"github.com/PolarWolf314/kanote/internal/notes"
	"github.com/PolarWolf314/kanote/internal/secrets"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

// configShowOutput is what config show reports.
type configShowOutput struct {
	ConfigPath      string `json:"config_path"`
	StorePath       string `json:"store_path"`
	StoreSource     string `json:"store_source"`
	StoreExists     bool   `json:"store_exists"`
	RotationPending bool   `json:"rotation_pending"`
	Iterations      int    `json:"iterations"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays the user configuration and the store path it resolves to.

Examples:
  kanote config show
  kanote config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")

		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load user config: %v", err)
		}

		envStore := os.Getenv(configs.StoreEnvVar)
		storePath, err := configs.ResolveStorePath("", envStore)
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to resolve store path: %v", err)
		}

		out := configShowOutput{
			ConfigPath:  configs.UserConfigPath(),
			StorePath:   storePath,
			StoreSource: storeSource(envStore, userConfig),
			Iterations:  userConfig.KDF.Iterations,
		}
		if out.Iterations == 0 {
			out.Iterations = secrets.DefaultIterations
		}

		out.StoreExists, err = notes.Exists(storePath)
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to check store: %v", err)
		}
		out.RotationPending, err = notes.RotationPending(storePath)
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to check for an interrupted password change: %v", err)
		}

		if configShowJSON {
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println(color.CyanString("User Configuration") + " (" + out.ConfigPath + "):")
		fmt.Println()
		fmt.Printf("  %-12s %s %s\n", "Store:", color.YellowString(out.StorePath), color.HiBlackString("("+out.StoreSource+")"))
		fmt.Printf("  %-12s %s\n", "Iterations:", color.GreenString("%d", out.Iterations))
		if !out.StoreExists {
			fmt.Println()
			fmt.Println(color.YellowString("⚠") + " No store exists at this path yet")
			fmt.Println(color.CyanString("→") + " Run " + color.YellowString("kanote notes init") + " to create one")
		}
		if out.RotationPending {
			fmt.Println()
			fmt.Println(color.YellowString("⚠") + " A password change was interrupted; it completes on the next unlock")
		}
		return nil
	},
}

func storeSource(envStore string, userConfig *configs.UserConfig) string {
	switch {
	case envStore != "":
		return "$" + configs.StoreEnvVar
	case userConfig.Store.Path != "":
		return "config.toml"
	default:
		return "default"
	}
}
