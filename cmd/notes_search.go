package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/kanote/internal/ui"
	"github.com/PolarWolf314/kanote/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	// search shares --number and --json with list.
	searchCmd.Flags().IntVarP(&listLimit, "number", "n", 0, "limit number of notes shown")
	searchCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON array")
	NotesCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find notes whose title or body contains a string",
	Long: `Decrypts every note and lists those whose title or body contains the
query, ignoring case. Results are in the same order as list.

Examples:
  kanote notes search bank
  kanote notes search "wifi password" --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting search command")

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

		spinner, cleanup := startSpinner("Searching notes...", verbose)
		result, err := workflows.Search(context.Background(), workflows.SearchOptions{
			StoreOptions: workflows.StoreOptions{Root: root, Password: password},
			Query:        args[0],
			Limit:        listLimit,
		})
		if err != nil {
			err = handleError(spinner, err)
			cleanup()
			return err
		}
		cleanup()

		if result.Total == 0 && !listJSON {
			fmt.Println("No notes match " + ui.Highlight.Sprint(args[0]) + ".")
			return nil
		}

		return printNoteList(result.Notes, result.Total, listJSON)
	},
}
