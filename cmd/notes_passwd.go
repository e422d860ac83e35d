package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/kanote/internal/ui"
	"github.com/PolarWolf314/kanote/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	NotesCmd.AddCommand(passwdCmd)
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the store password",
	Long: `Changes the store password and re-encrypts every note under the new key.

If the change is interrupted, the next command completes it. Either the
old or the new password is accepted until then.

With --password-stdin the first line is the current password and the
second line the new one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting passwd command")

		root, err := resolveStore()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve store path: %v", err)
		}

		current, err := readPassword("Current password: ")
		if err != nil {
			msg, _ := formatStoreError(err)
			fmt.Println(msg)
			return reported(err)
		}

		next, err := readNewPassword("New password: ", "Confirm new password: ")
		if err != nil {
			msg, _ := formatStoreError(err)
			fmt.Println(msg)
			return reported(err)
		}

		spinner, cleanup := startSpinner("Re-encrypting notes...", verbose)
		defer cleanup()

		result, err := workflows.Passwd(context.Background(), workflows.PasswdOptions{
			StoreOptions: workflows.StoreOptions{Root: root, Password: current},
			NewPassword:  next,
		})
		if err != nil {
			return handleError(spinner, err)
		}

		Logger.Infof("Re-encrypted %d notes, skipped %d", result.Rewritten, result.Skipped)
		msg := ui.Success.Sprint("✓") + fmt.Sprintf(" Password changed, %d notes re-encrypted", result.Rewritten)
		if result.Skipped > 0 {
			msg += "\n" + ui.Warning.Sprint("⚠") + fmt.Sprintf(" %d unreadable note files were left untouched", result.Skipped)
		}
		spinner.FinalMSG = msg
		return nil
	},
}
