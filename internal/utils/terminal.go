package utils

import (
	"bytes"
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"golang.org/x/term"
)

// ReadPassphrase prompts the user for a passphrase without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	if len(passphrase) == 0 {
		return nil, kerrors.ErrEmptyPassword
	}

	return passphrase, nil
}

// ReadNewPassphrase prompts twice and returns the passphrase if both entries match.
func ReadNewPassphrase(prompt, confirmPrompt string) ([]byte, error) {
	first, err := ReadPassphrase(prompt)
	if err != nil {
		return nil, err
	}

	second, err := ReadPassphrase(confirmPrompt)
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(first, second) {
		return nil, kerrors.ErrPasswordMismatch
	}

	return first, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
