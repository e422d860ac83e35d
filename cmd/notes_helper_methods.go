package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/PolarWolf314/kanote/internal/ui"
	"github.com/PolarWolf314/kanote/internal/utils"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	return startSpinnerWithFlags(message, verbose, debug)
}

// startSpinnerWithFlags is startSpinner for command groups with their own
// verbosity flags.
func startSpinnerWithFlags(message string, verbose, debugFlag bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Continue without a colored spinner if it fails.
	_ = s.Color("cyan")

	quiet := !verbose && !debugFlag
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print to stdout so tests can capture it.
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// readPassword returns the store password from stdin when --password-stdin
// is set and from a hidden terminal prompt otherwise.
func readPassword(prompt string) ([]byte, error) {
	if passwordStdin {
		return utils.ReadPasswordLine(stdinReader)
	}
	return utils.ReadPassphrase(prompt)
}

// readNewPassword is readPassword for a password being set. Interactive entry
// asks twice; piped input is taken as given.
func readNewPassword(prompt, confirmPrompt string) ([]byte, error) {
	if passwordStdin {
		return utils.ReadPasswordLine(stdinReader)
	}
	return utils.ReadNewPassphrase(prompt, confirmPrompt)
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// reported wraps err so main exits non-zero without printing it again.
func reported(err error) error {
	return &reportedError{err: err}
}

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// formatStoreError formats errors shared by every command that unlocks the store.
// The bool is false for errors no command handles specifically.
func formatStoreError(err error) (string, bool) {
	switch {
	case errors.Is(err, kerrors.ErrStoreNotInitialized):
		return ui.Error.Sprint("✗") + " No note store found\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("kanote notes init") + " first", true

	case errors.Is(err, kerrors.ErrInvalidPassword):
		return ui.Error.Sprint("✗") + " Incorrect password", true

	case errors.Is(err, kerrors.ErrEmptyPassword):
		return ui.Error.Sprint("✗") + " Password must not be empty", true

	case errors.Is(err, kerrors.ErrPasswordMismatch):
		return ui.Error.Sprint("✗") + " Passwords do not match", true

	case errors.Is(err, kerrors.ErrInvalidStoreConfig):
		return ui.Error.Sprint("✗") + " The store configuration is damaged: " + err.Error(), true

	case errors.Is(err, kerrors.ErrNoteNotFound):
		return ui.Error.Sprint("✗") + " Note not found\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("kanote notes list") + " to see note ids", true

	case errors.Is(err, kerrors.ErrAmbiguousNoteID):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Use more characters of the id", true
	}

	return ui.Error.Sprint("✗") + " " + err.Error(), false
}

// handleError sets the spinner's final message for err and returns the error
// main should see.
func handleError(s *spinner.Spinner, err error) error {
	msg, _ := formatStoreError(err)
	s.FinalMSG = msg
	Logger.Debugf("Command failed: %v", err)
	return reported(err)
}

// readBody returns the note body from --body or --body-file. A body file of
// "-" reads the rest of stdin, after any piped passwords.
func readBody(body, bodyFile string) (string, error) {
	if bodyFile == "" {
		return body, nil
	}
	if bodyFile == "-" {
		data, err := io.ReadAll(stdinReader)
		if err != nil {
			return "", fmt.Errorf("failed to read body from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(bodyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read body file: %w", err)
	}
	return string(data), nil
}
