package cmd

import (
	"bufio"
	"os"

	"github.com/PolarWolf314/kanote/internal/configs"
	logger "github.com/PolarWolf314/kanote/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose       bool
	debug         bool
	storeFlag     string
	passwordStdin bool
	Logger        logger.Logger

	// stdinReader is shared by every password read in one invocation so
	// that piped input can carry more than one line.
	stdinReader *bufio.Reader

	NotesCmd = &cobra.Command{
		Use:   "notes",
		Short: "Manage encrypted notes",
		Long: `Creates, reads, edits, searches and deletes notes in a password-protected store.

Every note is encrypted on disk with a key derived from the store password.
The store location is taken from --store, then $KANOTE_STORE, then
[store] path in the user config, then the default data directory.

Examples:
  kanote notes init
  kanote notes add --title "Bank" --body "1234"
  kanote notes list
  kanote notes search bank
  kanote notes passwd`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			stdinReader = bufio.NewReader(cmd.InOrStdin())
			Logger.Debugf("Initializing notes command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	NotesCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	NotesCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	NotesCmd.PersistentFlags().StringVarP(&storeFlag, "store", "s", "", "path to the note store")
	NotesCmd.PersistentFlags().BoolVar(&passwordStdin, "password-stdin", false, "read passwords from stdin, one per line")
}

// resolveStore returns the absolute store directory for this invocation.
func resolveStore() (string, error) {
	root, err := configs.ResolveStorePath(storeFlag, os.Getenv(configs.StoreEnvVar))
	if err != nil {
		return "", err
	}
	Logger.Debugf("Resolved store path: %s", root)
	return root, nil
}

// GetNotesCmd returns the NotesCmd for testing.
func GetNotesCmd() *cobra.Command {
	return NotesCmd
}

// ResetGlobalState resets all notes command global variables to their
// default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	storeFlag = ""
	passwordStdin = false
	stdinReader = nil
	resetAddCommandState()
	resetEditCommandState()
	resetListCommandState()
	resetShowCommandState()
	resetImportCommandState()
	resetLogCommandState()
	resetInitCommandState()
	resetNotesCobraFlagState()
}

// resetNotesCobraFlagState clears Changed on every notes flag so one test's
// flags do not leak into the next.
func resetNotesCobraFlagState() {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	NotesCmd.PersistentFlags().VisitAll(reset)
	for _, sub := range NotesCmd.Commands() {
		sub.Flags().VisitAll(reset)
	}
}
