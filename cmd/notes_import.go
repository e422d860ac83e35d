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

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "show which files would be imported without creating notes")
	NotesCmd.AddCommand(importCmd)
}

func resetImportCommandState() {
	importDryRun = false
}

var importCmd = &cobra.Command{
	Use:   "import <path|glob>...",
	Short: "Create notes from plaintext files",
	Long: `Creates one note per .txt, .md or .markdown file. The note title is the
file name without its extension. Directories are searched recursively and
globs may use **.

The source files are not modified or removed.

Examples:
  kanote notes import todo.txt
  kanote notes import ~/Documents/journal
  kanote notes import "notes/**/*.md" --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import command")
		Logger.Debugf("Patterns: %v", args)

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

		spinner, cleanup := startSpinner("Importing files...", verbose)
		defer cleanup()

		result, err := workflows.Import(context.Background(), workflows.ImportOptions{
			StoreOptions: workflows.StoreOptions{Root: root, Password: password},
			Patterns:     args,
			DryRun:       importDryRun,
		})
		if err != nil {
			spinner.FinalMSG = formatImportError(err)
			return reported(err)
		}

		spinner.FinalMSG = formatImportResult(result)
		return nil
	},
}

func formatImportResult(result *workflows.ImportResult) string {
	var imported, skipped []string
	for _, f := range result.Files {
		if f.SkipReason != "" {
			skipped = append(skipped, f.Path+" "+ui.Muted.Sprint(f.SkipReason))
			continue
		}
		imported = append(imported, f.Path)
	}

	var msg string
	if result.DryRun {
		msg = ui.Warning.Sprint("[dry-run]") + fmt.Sprintf(" Would import %d files:", len(imported)) + formatList(imported)
	} else {
		msg = ui.Success.Sprint("✓") + fmt.Sprintf(" Imported %d files:", result.Imported) + formatList(imported)
	}
	if len(skipped) > 0 {
		msg += ui.Warning.Sprint("⚠") + fmt.Sprintf(" Skipped %d files:", len(skipped)) + formatList(skipped)
	}
	return msg
}

func formatList(items []string) string {
	out := "\n"
	for _, item := range items {
		out += "    - " + item + "\n"
	}
	return out
}

func formatImportError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound):
		return ui.Error.Sprint("✗") + " No .txt or .md files matched\n" +
			ui.Info.Sprint("→") + " Check the paths or quote globs so the shell does not expand them"
	case errors.Is(err, kerrors.ErrFileNotFound), errors.Is(err, kerrors.ErrInvalidFileType):
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
	msg, _ := formatStoreError(err)
	return msg
}
