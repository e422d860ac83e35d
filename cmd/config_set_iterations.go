package cmd

import (
	"fmt"
	"strconv"

	"github.com/PolarWolf314/kanote/internal/configs"
	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/PolarWolf314/kanote/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	ConfigCmd.AddCommand(configSetIterationsCmd)
}

var configSetIterationsCmd = &cobra.Command{
	Use:   "set-iterations <n>",
	Short: "Set the PBKDF2 iteration count for new stores",
	Long: `Records the key derivation cost used by kanote notes init.

Existing stores keep the count recorded when they were created.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config set-iterations command")

		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Println(ui.Error.Sprint("✗") + " " + kerrors.ErrInvalidIterations.Error())
			return reported(kerrors.ErrInvalidIterations)
		}

		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load user config: %v", err)
		}

		userConfig.KDF.Iterations = n
		if err := configs.SaveUserConfig(userConfig); err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to save user config: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + fmt.Sprintf(" New stores will use %d iterations", n))
		return nil
	},
}
