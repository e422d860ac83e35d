// Package configs manages the store configuration record and the user's
// CLI configuration for Kanote.
//
// Configuration lives at two levels:
//
//   - Store config: <store>/config.json (KDF parameters and key-check record)
//   - User config: <user config dir>/kanote/config.toml (CLI preferences)
//
// # Store Configuration
//
// config.json is the one record needed to unlock a store:
//
//	{
//	  "version": 1,
//	  "kdf": "pbkdf2-sha256",
//	  "iterations": 200000,
//	  "salt": "<base64>",
//	  "keyCheck": {"nonce": "<base64>", "cipherText": "<base64>", "mac": "<base64>"}
//	}
//
// keyCheck is the sentinel string sealed under the key derived from the
// password, salt and iteration count. Unlock re-derives the key and opens
// the sentinel; any mismatch is reported as ErrInvalidPassword. The key
// itself is never written anywhere.
//
// Rotate is pure: it returns a new config and key but writes nothing. The
// notes package persists the new config only after every note has been
// re-encrypted.
//
// # User Configuration
//
// The user config stores:
//   - The default store directory
//   - The KDF iteration count used for new stores
//
// A missing user config is not an error; defaults are returned.
//
// # Settings
//
// UserKanoteSettings is initialized at startup with the user config path
// and the default store path. Tests override it directly.
package configs
