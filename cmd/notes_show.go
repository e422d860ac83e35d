package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/kanote/internal/ui"
	"github.com/PolarWolf314/kanote/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	showJSON     bool
	showBodyOnly bool
)

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the note as JSON")
	showCmd.Flags().BoolVar(&showBodyOnly, "body-only", false, "print only the body")
	NotesCmd.AddCommand(showCmd)
}

func resetShowCommandState() {
	showJSON = false
	showBodyOnly = false
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Decrypt and print a note",
	Long: `Decrypts a note and prints it. The id may be shortened to any unique prefix.

Examples:
  kanote notes show 0b9c1c2e
  kanote notes show 0b9c --body-only | pbcopy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting show command")

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

		spinner, cleanup := startSpinner("Decrypting note...", verbose)
		result, err := workflows.Show(context.Background(), workflows.ShowOptions{
			StoreOptions: workflows.StoreOptions{Root: root, Password: password},
			ID:           args[0],
		})
		if err != nil {
			err = handleError(spinner, err)
			cleanup()
			return err
		}
		cleanup()

		note := result.Note
		switch {
		case showJSON:
			data, err := json.MarshalIndent(note, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal note to JSON: %v", err)
			}
			fmt.Println(string(data))
		case showBodyOnly:
			fmt.Print(ui.EnsureNewline(note.Body))
		default:
			fmt.Println(ui.NoteHeading(note.ID, note.Title))
			fmt.Printf("%s %s  %s %s\n",
				ui.Muted.Sprint("created"), ui.Timestamp(note.CreatedAt),
				ui.Muted.Sprint("updated"), ui.Timestamp(note.UpdatedAt))
			fmt.Println()
			fmt.Print(ui.EnsureNewline(note.Body))
		}

		return nil
	},
}
