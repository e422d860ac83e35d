package errors

import "errors"

// Store state errors indicate issues with the store directory or its config.
var (
	// ErrStoreNotInitialized indicates no config.json exists at the store root.
	ErrStoreNotInitialized = errors.New("note store has not been initialized")

	// ErrStoreAlreadyInitialized indicates a config.json already exists at the store root.
	ErrStoreAlreadyInitialized = errors.New("note store has already been initialized")

	// ErrInvalidStoreConfig indicates the store configuration is malformed or unsupported.
	ErrInvalidStoreConfig = errors.New("note store configuration is invalid")
)

// Access errors indicate the caller could not prove knowledge of the password.
var (
	// ErrInvalidPassword indicates the derived key failed the key-check.
	// Tampered configs and wrong passwords are reported identically.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrEmptyPassword indicates an empty password was supplied.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrPasswordMismatch indicates the password confirmation did not match.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrSessionClosed indicates an operation on a session whose key was destroyed.
	ErrSessionClosed = errors.New("session is closed")
)

// Cryptographic errors stay inside the storage engine.
var (
	// ErrAuthenticationFailed indicates a payload failed tag verification.
	// Wrong keys and corrupted ciphertext are indistinguishable.
	ErrAuthenticationFailed = errors.New("message authentication failed")

	// ErrInvalidKDFParams indicates an empty salt or a non-positive iteration count.
	ErrInvalidKDFParams = errors.New("invalid key derivation parameters")

	// ErrInvalidKeyLength indicates a key that is not 256 bits long.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrKeyDestroyed indicates the master key has already been wiped from memory.
	ErrKeyDestroyed = errors.New("master key has been destroyed")
)

// Note errors.
var (
	// ErrNoteNotFound indicates the note is absent or unreadable under the session key.
	ErrNoteNotFound = errors.New("note not found")

	// ErrAmbiguousNoteID indicates an id prefix matched more than one note.
	ErrAmbiguousNoteID = errors.New("note id prefix is ambiguous")
)

// Input errors indicate invalid command arguments.
var (
	// ErrInvalidDateFormat indicates a date argument is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidIterations indicates a non-positive KDF iteration count.
	ErrInvalidIterations = errors.New("iterations must be a positive integer")
)

// File errors indicate issues with file discovery or access.
var (
	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFileType indicates the file is not of the expected type.
	ErrInvalidFileType = errors.New("invalid file type")
)
