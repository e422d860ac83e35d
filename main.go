package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/kanote/cmd"
	"github.com/awnumar/memguard"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kanote",
	Short: "Kanote - encrypted notes on your own disk.",
	Long: `Kanote keeps notes encrypted at rest in a directory you control.

Every note is sealed with AES-256-GCM under a key derived from your
password. Nothing is readable without it, and there is no recovery.

Usage:
  kanote <command> [flags]

Available Commands:
  notes     Create, read, search and manage notes
  config    Manage user configuration

Run 'kanote help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewColorFigure("Kanote", "alligator2", "green", true).Print()
		fmt.Println()
		fmt.Println("Run 'kanote --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.NotesCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	// Wipe key material if interrupted mid-command.
	memguard.CatchInterrupt()
	defer memguard.Purge()

	if err := rootCmd.Execute(); err != nil {
		if !cmd.IsReported(err) {
			fmt.Println(err)
		}
		memguard.Purge()
		os.Exit(1)
	}
}
