package secrets

import (
	"fmt"
	"sync"

	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/awnumar/memguard"
)

// MasterKey holds a session key in a memguard enclave.
// It is never serialized; Destroy drops the enclave.
type MasterKey struct {
	mu      sync.Mutex
	enclave *memguard.Enclave
}

// NewMasterKey moves raw into a new enclave. raw is wiped by memguard.
func NewMasterKey(raw []byte) (*MasterKey, error) {
	if len(raw) != KeySize {
		memguard.WipeBytes(raw)
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidKeyLength, KeySize, len(raw))
	}
	return &MasterKey{enclave: memguard.NewEnclave(raw)}, nil
}

// Seal encrypts plaintext under the key.
func (k *MasterKey) Seal(plaintext []byte) (*EncryptedPayload, error) {
	var payload *EncryptedPayload
	err := k.with(func(key []byte) error {
		var err error
		payload, err = Encrypt(plaintext, key)
		return err
	})
	return payload, err
}

// Open decrypts a payload sealed under the key.
func (k *MasterKey) Open(payload *EncryptedPayload) ([]byte, error) {
	var plaintext []byte
	err := k.with(func(key []byte) error {
		var err error
		plaintext, err = Decrypt(payload, key)
		return err
	})
	return plaintext, err
}

// Wrap seals other's key material under k.
func (k *MasterKey) Wrap(other *MasterKey) (*EncryptedPayload, error) {
	var payload *EncryptedPayload
	err := other.with(func(raw []byte) error {
		var err error
		payload, err = k.Seal(raw)
		return err
	})
	return payload, err
}

// Unwrap opens a payload produced by Wrap and returns the enclosed key.
func (k *MasterKey) Unwrap(payload *EncryptedPayload) (*MasterKey, error) {
	raw, err := k.Open(payload)
	if err != nil {
		return nil, err
	}
	return NewMasterKey(raw)
}

// Destroy discards the enclave. It is safe to call more than once.
func (k *MasterKey) Destroy() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.enclave = nil
}

// Destroyed reports whether Destroy has been called.
func (k *MasterKey) Destroyed() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.enclave == nil
}

func (k *MasterKey) with(fn func(key []byte) error) error {
	k.mu.Lock()
	enclave := k.enclave
	k.mu.Unlock()

	if enclave == nil {
		return kerrors.ErrKeyDestroyed
	}

	buf, err := enclave.Open()
	if err != nil {
		return fmt.Errorf("failed to open key enclave: %w", err)
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}
