// Package errors provides typed error values for Kanote.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Store errors: store state issues (ErrStoreNotInitialized, ErrStoreAlreadyInitialized)
//   - Access errors: the password could not be verified (ErrInvalidPassword)
//   - Crypto errors: envelope failures (ErrAuthenticationFailed)
//   - Note errors: the note is absent or unreadable (ErrNoteNotFound)
//
// ErrAuthenticationFailed is internal to the storage engine. The notes and
// configs packages collapse it into ErrInvalidPassword or a not-found result
// before it reaches the CLI, so a caller can never tell a wrong key from
// tampered data.
//
// # Usage
//
// Handle errors in the CLI layer:
//
//	session, err := notes.Unlock(root, password)
//	if errors.Is(err, kerrors.ErrInvalidPassword) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading note %s: %w", id, err)
package errors
