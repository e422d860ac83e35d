// Package workflows provides high-level orchestration for Kanote commands.
//
// Workflows coordinate the notes, configs, and audit packages to implement
// complete user-facing features. Each workflow handles a single command's
// business logic, independent of CLI concerns like flag parsing, password
// prompts, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Resolves the store path and reads passwords
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else: unlocking the store, performing the
// operation, closing the session, and recording an audit entry.
//
// # Available Workflows
//
//   - Init: Creates a new encrypted store
//   - Add, Show, Edit, Remove: Single note operations
//   - List, Search: Metadata of readable notes, most recent first
//   - Passwd: Changes the password and re-encrypts every note
//   - Import: Creates notes from plaintext files
//   - Log: Reads the audit trail
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package:
//
//	result, err := workflows.Show(ctx, opts)
//	if errors.Is(err, kerrors.ErrInvalidPassword) {
//	    // Show user-friendly message
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Cancellation is checked before unlocking and between imported files.
package workflows
