package cmd

import (
	"context"
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/PolarWolf314/kanote/internal/ui"
	"github.com/PolarWolf314/kanote/internal/workflows"
	"github.com/spf13/cobra"
)

var initIterations int

func init() {
	initCmd.Flags().IntVar(&initIterations, "iterations", 0, "PBKDF2 iterations for the new store (default from user config, else 200000)")
	NotesCmd.AddCommand(initCmd)
}

func resetInitCommandState() {
	initIterations = 0
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new encrypted note store",
	Long: `Creates an empty note store protected by a password.

The password is never stored. Forgetting it makes every note unrecoverable.

Examples:
  kanote notes init
  kanote notes init --store ~/vault
  echo "$PASSWORD" | kanote notes init --password-stdin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")

		root, err := resolveStore()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve store path: %v", err)
		}

		password, err := readNewPassword("New store password: ", "Confirm password: ")
		if err != nil {
			fmt.Println(formatInitError(err))
			return reported(err)
		}

		spinner, cleanup := startSpinner("Initializing note store...", verbose)
		defer cleanup()

		result, err := workflows.Init(context.Background(), workflows.InitOptions{
			Root:       root,
			Password:   password,
			Iterations: initIterations,
		})
		if err != nil {
			spinner.FinalMSG = formatInitError(err)
			return reported(err)
		}

		Logger.Infof("Store created at %s with %d iterations", result.Root, result.Iterations)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Note store initialized at " + ui.Path.Sprint(result.Root) + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("kanote notes add") + " to write your first note\n" +
			ui.Warning.Sprint("⚠") + " There is no way to recover notes if the password is lost"
		return nil
	},
}

func formatInitError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrStoreAlreadyInitialized):
		return ui.Error.Sprint("✗") + " A note store already exists here\n" +
			ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--store") + " to choose another location"
	case errors.Is(err, kerrors.ErrInvalidIterations):
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
	msg, _ := formatStoreError(err)
	return msg
}
