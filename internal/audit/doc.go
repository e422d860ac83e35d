// Package audit records what happened to a note store and when.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) inside
// the store root:
//
//	<store>/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Operation name
//   - Operation-specific counters and the note id where one applies
//
// Titles, bodies, and passwords are never written. The log is plaintext so
// it can be read without unlocking the store.
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails the operation continues
// without error.
//
// # Reading Logs
//
// Use ReadEntries to parse the audit log for display. Malformed entries are
// silently skipped to handle partial writes.
package audit
