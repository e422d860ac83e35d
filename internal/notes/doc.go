// Package notes is the note repository: CRUD, listing, search and password
// rotation over a directory of individually encrypted note files.
//
// # Layout
//
//	<root>/config.json           store config (see package configs)
//	<root>/notes/<id>.json.enc   one EncryptedPayload per note
//	<root>/rotation.json         present only while a password change is in flight
//
// Each note file holds the JSON form of a Note sealed under the session's
// master key:
//
//	{"id": "...", "title": "...", "createdAt": "...", "updatedAt": "...", "body": "..."}
//
// # Sessions
//
// Unlock returns a Session that owns the master key for its lifetime. Every
// repository operation goes through the session; there is no package-level
// key. Close destroys the key. A session is meant for one goroutine; callers
// serialize their own operations.
//
// # Unreadable Notes
//
// A note that fails to decrypt or parse (wrong key, corruption, schema
// mismatch, a file whose embedded id does not match its name) is treated as
// absent by Read, List and Search. This is done in exactly one place,
// decodeOrSkip, so callers can never distinguish "missing" from
// "unreadable". Only real I/O errors propagate.
//
// # Password Rotation
//
// ChangePassword writes a rotation journal before touching any note. The
// journal carries the old and new configs plus each key sealed under the
// other. Notes are then re-encrypted one by one, the new config replaces the
// old, and the journal is removed. If the process dies part way, the next
// Unlock with either password finds the journal and finishes the job, so no
// note is left under a key that no persisted config describes.
//
// # Concurrency
//
// There is no cross-process locking. Two processes writing the same store
// race with last-writer-wins semantics on each file.
package notes
