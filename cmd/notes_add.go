package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/kanote/internal/ui"
	"github.com/PolarWolf314/kanote/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	addTitle    string
	addBody     string
	addBodyFile string
)

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "note title")
	addCmd.Flags().StringVarP(&addBody, "body", "b", "", "note body")
	addCmd.Flags().StringVarP(&addBodyFile, "body-file", "f", "", "read the body from a file (- for stdin)")
	addCmd.MarkFlagsMutuallyExclusive("body", "body-file")
	NotesCmd.AddCommand(addCmd)
}

func resetAddCommandState() {
	addTitle = ""
	addBody = ""
	addBodyFile = ""
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	Long: `Encrypts and stores a new note.

Examples:
  kanote notes add --title "Bank" --body "PIN 1234"
  kanote notes add -t "Recipe" -f recipe.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting add command")

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

		body, err := readBody(addBody, addBodyFile)
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		spinner, cleanup := startSpinner("Encrypting note...", verbose)
		defer cleanup()

		result, err := workflows.Add(context.Background(), workflows.AddOptions{
			StoreOptions: workflows.StoreOptions{Root: root, Password: password},
			Title:        addTitle,
			Body:         body,
		})
		if err != nil {
			return handleError(spinner, err)
		}

		Logger.Infof("Created note %s", result.Note.ID)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Created " + ui.NoteHeading(result.Note.ID, result.Note.Title)
		return nil
	},
}
