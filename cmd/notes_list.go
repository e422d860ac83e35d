package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/kanote/internal/notes"
	"github.com/PolarWolf314/kanote/internal/ui"
	"github.com/PolarWolf314/kanote/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	listLimit int
	listJSON  bool
)

func init() {
	listCmd.Flags().IntVarP(&listLimit, "number", "n", 0, "limit number of notes shown")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON array")
	NotesCmd.AddCommand(listCmd)
}

func resetListCommandState() {
	listLimit = 0
	listJSON = false
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes, most recently updated first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

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

		spinner, cleanup := startSpinner("Decrypting notes...", verbose)
		result, err := workflows.List(context.Background(), workflows.ListOptions{
			StoreOptions: workflows.StoreOptions{Root: root, Password: password},
			Limit:        listLimit,
		})
		if err != nil {
			err = handleError(spinner, err)
			cleanup()
			return err
		}
		cleanup()

		if result.Total == 0 && !listJSON {
			fmt.Println("No notes yet.")
			return nil
		}

		return printNoteList(result.Notes, result.Total, listJSON)
	},
}

// printNoteList prints metas one per line, or as a JSON array.
func printNoteList(metas []notes.NoteMeta, total int, asJSON bool) error {
	if asJSON {
		if metas == nil {
			metas = []notes.NoteMeta{}
		}
		data, err := json.MarshalIndent(metas, "", "  ")
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to marshal notes to JSON: %v", err)
		}
		fmt.Println(string(data))
		return nil
	}

	for _, meta := range metas {
		fmt.Printf("%s  %s\n", ui.Timestamp(meta.UpdatedAt), ui.NoteHeading(meta.ID, meta.Title))
	}
	if len(metas) < total {
		fmt.Println(ui.Muted.Sprintf("%d more", total-len(metas)))
	}
	return nil
}
