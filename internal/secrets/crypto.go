package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the length of every derived or wrapped key (AES-256).
	KeySize = 32

	// SaltSize is the length of a freshly generated KDF salt.
	SaltSize = 16

	// NonceSize is the GCM nonce length.
	NonceSize = 12

	// TagSize is the GCM authentication tag length.
	TagSize = 16

	// DefaultIterations is the PBKDF2 cost for newly created stores.
	DefaultIterations = 200000

	// KDFName identifies the key derivation function in persisted configs.
	KDFName = "pbkdf2-sha256"
)

// DeriveKey stretches a password into a 256-bit key using PBKDF2-HMAC-SHA256.
// The same inputs always yield the same key.
func DeriveKey(password, salt []byte, iterations int) ([]byte, error) {
	if len(salt) == 0 || iterations < 1 {
		return nil, kerrors.ErrInvalidKDFParams
	}
	return pbkdf2.Key(password, salt, iterations, KeySize, sha256.New), nil
}

// GenerateSalt returns SaltSize bytes from the system CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// Encrypt seals plaintext under key with AES-256-GCM and a fresh random nonce.
func Encrypt(plaintext, key []byte) (*EncryptedPayload, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - TagSize

	return &EncryptedPayload{
		Nonce:      nonce,
		CipherText: sealed[:split],
		MAC:        sealed[split:],
	}, nil
}

// Decrypt opens a payload produced by Encrypt.
// Any failure is reported as ErrAuthenticationFailed.
func Decrypt(payload *EncryptedPayload, key []byte) ([]byte, error) {
	if payload == nil || len(payload.Nonce) != NonceSize || len(payload.MAC) != TagSize {
		return nil, kerrors.ErrAuthenticationFailed
	}

	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(payload.CipherText)+TagSize)
	sealed = append(sealed, payload.CipherText...)
	sealed = append(sealed, payload.MAC...)

	plaintext, err := aead.Open(nil, payload.Nonce, sealed, nil)
	if err != nil {
		return nil, kerrors.ErrAuthenticationFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidKeyLength, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return cipher.NewGCM(block)
}
