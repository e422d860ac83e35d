package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/kanote/internal/audit"
	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/PolarWolf314/kanote/internal/ui"
	"github.com/PolarWolf314/kanote/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logNote      string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logNote, "note", "", "filter by note id or id prefix")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")

	NotesCmd.AddCommand(logCmd)
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logNote = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of store operations.

The log records what was done and when. It never contains titles, bodies
or passwords, so no password is needed to read it.

Examples:
  kanote notes log                       # View full log
  kanote notes log -n 10                 # Last 10 entries
  kanote notes log --reverse             # Most recent first
  kanote notes log --operation add,rm    # Filter by operation
  kanote notes log --note 0b9c           # History of one note
  kanote notes log --since 2024-01-01    # Filter by date
  kanote notes log --json                # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	root, err := resolveStore()
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to resolve store path: %v", err)
	}

	result, err := workflows.Log(context.Background(), workflows.LogOptions{
		Root:       root,
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		NoteID:     logNote,
		Since:      logSince,
		Until:      logUntil,
	})
	if err != nil {
		fmt.Println(formatLogError(err))
		if isLogUnexpectedError(err) {
			return reported(err)
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit log entries found.")
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	if logJSON {
		return outputLogJSON(result.Entries)
	}

	outputLogDefault(result.Entries)
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound):
		return ui.Info.Sprint("ℹ") + " No audit log found. Operations are logged once the store is used."
	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
	msg, _ := formatStoreError(err)
	return msg
}

// isLogUnexpectedError returns true if the error should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	return !errors.Is(err, kerrors.ErrNoFilesFound)
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		fmt.Printf("%-19s  %-7s  %s\n", formatLogTime(e.Timestamp), e.Operation, formatLogDetails(e))
	}
}

func formatLogTime(ts string) string {
	t, err := time.Parse(audit.TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatLogDetails(e audit.Entry) string {
	var parts []string
	if e.NoteID != "" {
		parts = append(parts, e.NoteID)
	}
	switch e.Operation {
	case "list":
		parts = append(parts, fmt.Sprintf("%d notes", e.NotesCount))
	case "search":
		parts = append(parts, fmt.Sprintf("%d matches, query of %d chars", e.NotesCount, e.QueryLen))
	case "passwd":
		parts = append(parts, fmt.Sprintf("%d notes re-encrypted", e.NotesCount))
		if e.Skipped > 0 {
			parts = append(parts, fmt.Sprintf("%d skipped", e.Skipped))
		}
	case "import":
		parts = append(parts, fmt.Sprintf("%d files", e.FilesCount))
	}
	return strings.Join(parts, ", ")
}
