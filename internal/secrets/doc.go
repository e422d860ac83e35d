// Package secrets provides the cipher envelope for Kanote.
//
// This package turns a password into a key and a key plus bytes into a
// tamper-evident ciphertext and back. It knows nothing about notes or
// files.
//
// # Key Derivation
//
// Keys are derived with PBKDF2 using HMAC-SHA-256 as the pseudorandom
// function. The output is always 32 bytes (AES-256). Salts are 16 random
// bytes. The iteration count for new stores is DefaultIterations, but the
// count persisted in a store's config is always the one honored on unlock.
//
// # Encryption
//
// Payloads are sealed with AES-256-GCM. Every call to Encrypt draws a fresh
// 12-byte nonce from crypto/rand; nonces are never derived or reused. The
// GCM output is split into the ciphertext (same length as the plaintext)
// and the 16-byte authentication tag so each part can be stored as its own
// named base64 field:
//
//	{"nonce": "...", "cipherText": "...", "mac": "..."}
//
// # Failure Reporting
//
// Decrypt reports every failure (wrong key, flipped bit, truncated tag,
// bad nonce length) as errors.ErrAuthenticationFailed. Callers must not
// branch on why decryption failed.
//
// # Key Handling
//
// MasterKey keeps the session key inside a memguard enclave. The plaintext
// key only exists in a locked buffer for the duration of a single seal or
// open call.
package secrets
