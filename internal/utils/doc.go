// Package utils provides shared utility functions for Kanote.
//
// This package contains general-purpose helpers used across multiple packages.
// Functions are organized into logical groups:
//
// # Filesystem Utilities
//
// Functions for writing store files and finding import candidates:
//   - WriteFileAtomic: replaces a file via temp file, fsync and rename
//   - FileExists: reports whether a path exists
//   - ResolveFiles: expands literal paths, directories and ** globs
//
// # String Utilities
//
// Functions for string manipulation and formatting:
//   - FormatPaths: formats file paths for human-readable output
//   - Truncate: shortens a single-line preview
//
// # I/O Utilities
//
// Functions for reading from stdin:
//   - ReadPasswordLine: reads one password line from piped input
//
// # Terminal Utilities
//
// Functions for terminal detection and hidden password entry:
//   - ReadPassphrase: prompts without echoing input
//   - ReadNewPassphrase: prompts twice and checks that both entries match
//   - IsTerminal: checks if stdin is a terminal
package utils
