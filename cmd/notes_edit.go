package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/kanote/internal/ui"
	"github.com/PolarWolf314/kanote/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	editTitle    string
	editBody     string
	editBodyFile string
)

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title")
	editCmd.Flags().StringVarP(&editBody, "body", "b", "", "new body")
	editCmd.Flags().StringVarP(&editBodyFile, "body-file", "f", "", "read the new body from a file (- for stdin)")
	editCmd.MarkFlagsMutuallyExclusive("body", "body-file")
	editCmd.MarkFlagsOneRequired("title", "body", "body-file")
	NotesCmd.AddCommand(editCmd)
}

func resetEditCommandState() {
	editTitle = ""
	editBody = ""
	editBodyFile = ""
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a note's title or body",
	Long: `Replaces the title and/or body of a note. Fields that are not given keep
their current value. The creation time is preserved.

Examples:
  kanote notes edit 0b9c --title "Bank (old)"
  kanote notes edit 0b9c -f updated.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting edit command")

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

		opts := workflows.EditOptions{
			StoreOptions: workflows.StoreOptions{Root: root, Password: password},
			ID:           args[0],
		}
		if cmd.Flags().Changed("title") {
			opts.Title = &editTitle
		}
		if cmd.Flags().Changed("body") || cmd.Flags().Changed("body-file") {
			body, err := readBody(editBody, editBodyFile)
			if err != nil {
				return Logger.ErrorfAndReturn("%v", err)
			}
			opts.Body = &body
		}

		spinner, cleanup := startSpinner("Updating note...", verbose)
		defer cleanup()

		result, err := workflows.Edit(context.Background(), opts)
		if err != nil {
			return handleError(spinner, err)
		}

		if !result.Changed {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No changes to " + ui.NoteHeading(result.Note.ID, result.Note.Title)
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Updated " + ui.NoteHeading(result.Note.ID, result.Note.Title)
		return nil
	},
}
