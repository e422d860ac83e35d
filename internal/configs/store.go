package configs

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/PolarWolf314/kanote/internal/secrets"
	"github.com/PolarWolf314/kanote/internal/utils"
)

const (
	// StoreConfigVersion is the only schema version this build understands.
	StoreConfigVersion = 1

	// StoreConfigFileName is the config file name under the store root.
	StoreConfigFileName = "config.json"

	// NotesDirName is the directory holding one encrypted file per note.
	NotesDirName = "notes"

	// KeyCheckSentinel is the publicly known plaintext of every key-check record.
	KeyCheckSentinel = "kanote-key-check"
)

// StoreConfig is the persisted record used to unlock a store.
type StoreConfig struct {
	Version    int                       `json:"version"`
	KDF        string                    `json:"kdf"`
	Iterations int                       `json:"iterations"`
	Salt       []byte                    `json:"salt"`
	KeyCheck   *secrets.EncryptedPayload `json:"keyCheck"`
}

// StoreConfigPath returns the path to config.json under root.
func StoreConfigPath(root string) string {
	return filepath.Join(root, StoreConfigFileName)
}

// NotesPath returns the notes directory under root.
func NotesPath(root string) string {
	return filepath.Join(root, NotesDirName)
}

// NewStoreConfig builds a fresh config for password and returns it with its key.
// iterations <= 0 selects secrets.DefaultIterations. Nothing is written.
func NewStoreConfig(password []byte, iterations int) (*StoreConfig, *secrets.MasterKey, error) {
	if iterations <= 0 {
		iterations = secrets.DefaultIterations
	}
	return buildStoreConfig(password, iterations)
}

// Unlock derives a key from password and verifies it against the key-check record.
// Every failure, including a tampered config, is reported as ErrInvalidPassword.
func (c *StoreConfig) Unlock(password []byte) (*secrets.MasterKey, error) {
	raw, err := secrets.DeriveKey(password, c.Salt, c.Iterations)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidStoreConfig, err)
	}

	key, err := secrets.NewMasterKey(raw)
	if err != nil {
		return nil, err
	}

	if !c.Verify(key) {
		key.Destroy()
		return nil, kerrors.ErrInvalidPassword
	}

	return key, nil
}

// Verify reports whether key opens the key-check record to the sentinel.
func (c *StoreConfig) Verify(key *secrets.MasterKey) bool {
	plaintext, err := key.Open(c.KeyCheck)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(plaintext, []byte(KeyCheckSentinel)) == 1
}

// Rotate returns a new config with a fresh salt and key-check for newPassword,
// keeping the current iteration count. oldKey must unlock c.
// Nothing is written; the caller persists the result.
func (c *StoreConfig) Rotate(oldKey *secrets.MasterKey, newPassword []byte) (*StoreConfig, *secrets.MasterKey, error) {
	if !c.Verify(oldKey) {
		return nil, nil, kerrors.ErrInvalidPassword
	}
	return buildStoreConfig(newPassword, c.Iterations)
}

// Validate checks that the config describes something this build can unlock.
func (c *StoreConfig) Validate() error {
	switch {
	case c.Version != StoreConfigVersion:
		return fmt.Errorf("%w: unsupported version %d", kerrors.ErrInvalidStoreConfig, c.Version)
	case c.KDF != secrets.KDFName:
		return fmt.Errorf("%w: unsupported kdf %q", kerrors.ErrInvalidStoreConfig, c.KDF)
	case c.Iterations < 1:
		return fmt.Errorf("%w: iterations must be positive", kerrors.ErrInvalidStoreConfig)
	case len(c.Salt) == 0:
		return fmt.Errorf("%w: missing salt", kerrors.ErrInvalidStoreConfig)
	case c.KeyCheck == nil:
		return fmt.Errorf("%w: missing key check", kerrors.ErrInvalidStoreConfig)
	}
	return nil
}

func buildStoreConfig(password []byte, iterations int) (*StoreConfig, *secrets.MasterKey, error) {
	salt, err := secrets.GenerateSalt()
	if err != nil {
		return nil, nil, err
	}

	raw, err := secrets.DeriveKey(password, salt, iterations)
	if err != nil {
		return nil, nil, err
	}

	key, err := secrets.NewMasterKey(raw)
	if err != nil {
		return nil, nil, err
	}

	keyCheck, err := key.Seal([]byte(KeyCheckSentinel))
	if err != nil {
		key.Destroy()
		return nil, nil, fmt.Errorf("failed to seal key check: %w", err)
	}

	return &StoreConfig{
		Version:    StoreConfigVersion,
		KDF:        secrets.KDFName,
		Iterations: iterations,
		Salt:       salt,
		KeyCheck:   keyCheck,
	}, key, nil
}

// StoreConfigExists reports whether root already holds a config.json.
func StoreConfigExists(root string) (bool, error) {
	return utils.FileExists(StoreConfigPath(root))
}

// InitializeStoreConfig creates the store directories and writes a new config.
// Returns ErrStoreAlreadyInitialized without touching anything if a config exists.
func InitializeStoreConfig(root string, password []byte, iterations int) (*StoreConfig, *secrets.MasterKey, error) {
	exists, err := StoreConfigExists(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check store config: %w", err)
	}
	if exists {
		return nil, nil, kerrors.ErrStoreAlreadyInitialized
	}

	if err := os.MkdirAll(NotesPath(root), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", NotesPath(root), err)
	}

	cfg, key, err := NewStoreConfig(password, iterations)
	if err != nil {
		return nil, nil, err
	}

	if err := SaveStoreConfig(root, cfg); err != nil {
		key.Destroy()
		return nil, nil, err
	}

	return cfg, key, nil
}

// LoadStoreConfig reads and validates config.json under root.
func LoadStoreConfig(root string) (*StoreConfig, error) {
	data, err := os.ReadFile(StoreConfigPath(root))
	if errors.Is(err, os.ErrNotExist) {
		return nil, kerrors.ErrStoreNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store config: %w", err)
	}

	return ParseStoreConfig(data)
}

// ParseStoreConfig decodes and validates a config.json document.
func ParseStoreConfig(data []byte) (*StoreConfig, error) {
	cfg := &StoreConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidStoreConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveStoreConfig atomically replaces config.json under root.
func SaveStoreConfig(root string, cfg *StoreConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store config: %w", err)
	}

	if err := utils.WriteFileAtomic(StoreConfigPath(root), data, 0600); err != nil {
		return fmt.Errorf("failed to save store config: %w", err)
	}

	return nil
}
