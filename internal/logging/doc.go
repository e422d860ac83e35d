// Package logger provides leveled logging for Kanote CLI commands.
//
// Verbosity is controlled by two persistent flags:
//
//   - --verbose: Shows info messages
//   - --debug: Shows info and debug messages
//
// Warnings and errors are always written to stderr.
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Unlocking store at %s", root)
//
// Commands create a logger in PersistentPreRun and pass it down. Note
// titles, bodies, and passwords are never logged.
package logger
