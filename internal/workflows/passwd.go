package workflows

import (
	"context"

	"github.com/PolarWolf314/kanote/internal/audit"
	kerrors "github.com/PolarWolf314/kanote/internal/errors"
)

// PasswdOptions configures the passwd workflow.
type PasswdOptions struct {
	// StoreOptions.Password is the current password.
	StoreOptions

	NewPassword []byte
}

// PasswdResult contains the outcome of a password change.
type PasswdResult struct {
	// Rewritten is the number of notes re-encrypted under the new key.
	Rewritten int

	// Skipped is the number of note files that could not be read and were
	// left as they were.
	Skipped int
}

// Passwd changes the store password and re-encrypts every note.
//
// Returns ErrEmptyPassword if NewPassword is empty.
// Returns ErrInvalidPassword if the current password is wrong.
func Passwd(ctx context.Context, opts PasswdOptions) (*PasswdResult, error) {
	if len(opts.NewPassword) == 0 {
		return nil, kerrors.ErrEmptyPassword
	}

	session, err := openSession(ctx, opts.StoreOptions)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	result, err := session.ChangePassword(opts.NewPassword)
	if err != nil {
		return nil, err
	}

	audit.Log(opts.Root, audit.Entry{
		Operation:  "passwd",
		NotesCount: result.Rewritten,
		Skipped:    result.Skipped,
	})

	return &PasswdResult{
		Rewritten: result.Rewritten,
		Skipped:   result.Skipped,
	}, nil
}
