package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/kanote/internal/ui"
	"github.com/PolarWolf314/kanote/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	NotesCmd.AddCommand(rmCmd)
}

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a note",
	Long: `Deletes a note. The full id is required.

Deleting a note that does not exist is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting rm command")

		root, err := resolveStore()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve store path: %v", err)
		}

		password, err := readPassword("Password: ")
		if err != nil {
			msg, _ := formatStoreError(err)
			fmt.Println(msg)
			return reported(err)
		}

		spinner, cleanup := startSpinner("Deleting note...", verbose)
		defer cleanup()

		result, err := workflows.Remove(context.Background(), workflows.RemoveOptions{
			StoreOptions: workflows.StoreOptions{Root: root, Password: password},
			ID:           args[0],
		})
		if err != nil {
			return handleError(spinner, err)
		}

		if !result.Deleted {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No note with id " + ui.ID.Sprint(result.ID)
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Deleted " + ui.ID.Sprint(result.ID)
		return nil
	},
}
