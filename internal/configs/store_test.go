package configs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/PolarWolf314/kanote/internal/secrets"
)

const testIterations = 10

func TestNewStoreConfig(t *testing.T) {
	cfg, key, err := NewStoreConfig([]byte("p1"), testIterations)
	if err != nil {
		t.Fatalf("NewStoreConfig failed: %v", err)
	}
	defer key.Destroy()

	if cfg.Version != StoreConfigVersion {
		t.Errorf("Expected version %d, got %d", StoreConfigVersion, cfg.Version)
	}
	if cfg.KDF != secrets.KDFName {
		t.Errorf("Expected kdf %q, got %q", secrets.KDFName, cfg.KDF)
	}
	if cfg.Iterations != testIterations {
		t.Errorf("Expected iterations %d, got %d", testIterations, cfg.Iterations)
	}
	if len(cfg.Salt) != secrets.SaltSize {
		t.Errorf("Expected salt length %d, got %d", secrets.SaltSize, len(cfg.Salt))
	}
	if !cfg.Verify(key) {
		t.Error("Expected returned key to verify against the key check")
	}
}

func TestNewStoreConfig_DefaultIterations(t *testing.T) {
	if testing.Short() {
		t.Skip("derives a key at full cost")
	}

	cfg, key, err := NewStoreConfig([]byte("p1"), 0)
	if err != nil {
		t.Fatalf("NewStoreConfig failed: %v", err)
	}
	defer key.Destroy()

	if cfg.Iterations != secrets.DefaultIterations {
		t.Errorf("Expected iterations %d, got %d", secrets.DefaultIterations, cfg.Iterations)
	}
}

func TestStoreConfig_Unlock(t *testing.T) {
	cfg, key, err := NewStoreConfig([]byte("correct horse"), testIterations)
	if err != nil {
		t.Fatalf("NewStoreConfig failed: %v", err)
	}
	key.Destroy()

	unlocked, err := cfg.Unlock([]byte("correct horse"))
	if err != nil {
		t.Fatalf("Unlock with the right password failed: %v", err)
	}
	unlocked.Destroy()

	for _, pw := range []string{"wrong", "", "correct horse "} {
		if _, err := cfg.Unlock([]byte(pw)); !errors.Is(err, kerrors.ErrInvalidPassword) {
			t.Errorf("Unlock(%q): expected ErrInvalidPassword, got: %v", pw, err)
		}
	}
}

func TestStoreConfig_UnlockHonorsPersistedIterations(t *testing.T) {
	cfg, key, err := NewStoreConfig([]byte("pw"), testIterations)
	if err != nil {
		t.Fatalf("NewStoreConfig failed: %v", err)
	}
	key.Destroy()

	cfg.Iterations = testIterations + 1
	if _, err := cfg.Unlock([]byte("pw")); !errors.Is(err, kerrors.ErrInvalidPassword) {
		t.Errorf("Expected a changed iteration count to fail the key check, got: %v", err)
	}
}

func TestStoreConfig_UnlockTamperedKeyCheck(t *testing.T) {
	cfg, key, err := NewStoreConfig([]byte("pw"), testIterations)
	if err != nil {
		t.Fatalf("NewStoreConfig failed: %v", err)
	}
	key.Destroy()

	cfg.KeyCheck.CipherText[0] ^= 0x01
	if _, err := cfg.Unlock([]byte("pw")); !errors.Is(err, kerrors.ErrInvalidPassword) {
		t.Errorf("Expected ErrInvalidPassword for a tampered key check, got: %v", err)
	}
}

func TestStoreConfig_UnlockWrongSentinel(t *testing.T) {
	cfg, key, err := NewStoreConfig([]byte("pw"), testIterations)
	if err != nil {
		t.Fatalf("NewStoreConfig failed: %v", err)
	}
	defer key.Destroy()

	// A valid ciphertext of some other plaintext must still be rejected.
	other, err := key.Seal([]byte("not the sentinel"))
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	cfg.KeyCheck = other

	if _, err := cfg.Unlock([]byte("pw")); !errors.Is(err, kerrors.ErrInvalidPassword) {
		t.Errorf("Expected ErrInvalidPassword for a wrong sentinel, got: %v", err)
	}
}

func TestStoreConfig_Rotate(t *testing.T) {
	cfg, oldKey, err := NewStoreConfig([]byte("p1"), testIterations)
	if err != nil {
		t.Fatalf("NewStoreConfig failed: %v", err)
	}
	defer oldKey.Destroy()

	newCfg, newKey, err := cfg.Rotate(oldKey, []byte("p2"))
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	defer newKey.Destroy()

	if string(newCfg.Salt) == string(cfg.Salt) {
		t.Error("Expected rotation to generate a new salt")
	}
	if newCfg.Iterations != cfg.Iterations {
		t.Errorf("Expected iterations to carry over, got %d", newCfg.Iterations)
	}
	if _, err := newCfg.Unlock([]byte("p1")); !errors.Is(err, kerrors.ErrInvalidPassword) {
		t.Errorf("Expected old password to fail on the new config, got: %v", err)
	}
	if !newCfg.Verify(newKey) {
		t.Error("Expected new key to verify against the new config")
	}

	// The original config is untouched.
	if !cfg.Verify(oldKey) {
		t.Error("Expected original config to still verify with the old key")
	}
}

func TestStoreConfig_RotateRequiresCurrentKey(t *testing.T) {
	cfg, key, err := NewStoreConfig([]byte("p1"), testIterations)
	if err != nil {
		t.Fatalf("NewStoreConfig failed: %v", err)
	}
	defer key.Destroy()

	_, stranger, err := NewStoreConfig([]byte("p1"), testIterations)
	if err != nil {
		t.Fatalf("NewStoreConfig failed: %v", err)
	}
	defer stranger.Destroy()

	if _, _, err := cfg.Rotate(stranger, []byte("p2")); !errors.Is(err, kerrors.ErrInvalidPassword) {
		t.Errorf("Expected ErrInvalidPassword, got: %v", err)
	}
}

func TestInitializeStoreConfig(t *testing.T) {
	root := filepath.Join(t.TempDir(), "store")

	_, key, err := InitializeStoreConfig(root, []byte("pw"), testIterations)
	if err != nil {
		t.Fatalf("InitializeStoreConfig failed: %v", err)
	}
	key.Destroy()

	if info, err := os.Stat(NotesPath(root)); err != nil || !info.IsDir() {
		t.Errorf("Expected notes directory to exist: %v", err)
	}

	exists, err := StoreConfigExists(root)
	if err != nil || !exists {
		t.Fatalf("Expected config to exist, got (%t, %v)", exists, err)
	}

	before, err := os.ReadFile(StoreConfigPath(root))
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	_, _, err = InitializeStoreConfig(root, []byte("other"), testIterations)
	if !errors.Is(err, kerrors.ErrStoreAlreadyInitialized) {
		t.Fatalf("Expected ErrStoreAlreadyInitialized, got: %v", err)
	}

	after, err := os.ReadFile(StoreConfigPath(root))
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if string(before) != string(after) {
		t.Error("Expected second initialization to leave the config untouched")
	}
}

func TestLoadStoreConfig_RoundTrip(t *testing.T) {
	root := t.TempDir()

	_, key, err := InitializeStoreConfig(root, []byte("pw"), testIterations)
	if err != nil {
		t.Fatalf("InitializeStoreConfig failed: %v", err)
	}
	key.Destroy()

	loaded, err := LoadStoreConfig(root)
	if err != nil {
		t.Fatalf("LoadStoreConfig failed: %v", err)
	}

	unlocked, err := loaded.Unlock([]byte("pw"))
	if err != nil {
		t.Fatalf("Unlock after reload failed: %v", err)
	}
	unlocked.Destroy()
}

func TestStoreConfig_WireFormat(t *testing.T) {
	root := t.TempDir()

	_, key, err := InitializeStoreConfig(root, []byte("pw"), testIterations)
	if err != nil {
		t.Fatalf("InitializeStoreConfig failed: %v", err)
	}
	key.Destroy()

	data, err := os.ReadFile(StoreConfigPath(root))
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("config.json is not a JSON object: %v", err)
	}
	for _, field := range []string{"version", "kdf", "iterations", "salt", "keyCheck"} {
		if _, ok := doc[field]; !ok {
			t.Errorf("Expected field %q in config.json", field)
		}
	}

	var keyCheck map[string]string
	if err := json.Unmarshal(doc["keyCheck"], &keyCheck); err != nil {
		t.Fatalf("keyCheck is not a string map: %v", err)
	}
	for _, field := range []string{"nonce", "cipherText", "mac"} {
		if keyCheck[field] == "" {
			t.Errorf("Expected non-empty keyCheck field %q", field)
		}
	}
	if strings.Contains(string(data), KeyCheckSentinel) {
		t.Error("Sentinel plaintext must not appear in config.json")
	}
}

func TestLoadStoreConfig_NotInitialized(t *testing.T) {
	if _, err := LoadStoreConfig(t.TempDir()); !errors.Is(err, kerrors.ErrStoreNotInitialized) {
		t.Errorf("Expected ErrStoreNotInitialized, got: %v", err)
	}
}

func TestParseStoreConfig_Invalid(t *testing.T) {
	valid, key, err := NewStoreConfig([]byte("pw"), testIterations)
	if err != nil {
		t.Fatalf("NewStoreConfig failed: %v", err)
	}
	key.Destroy()

	mutate := func(fn func(c *StoreConfig)) []byte {
		c := *valid
		fn(&c)
		data, err := json.Marshal(&c)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		return data
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"NotJSON", []byte("not json")},
		{"BadVersion", mutate(func(c *StoreConfig) { c.Version = 2 })},
		{"BadKDF", mutate(func(c *StoreConfig) { c.KDF = "scrypt" })},
		{"ZeroIterations", mutate(func(c *StoreConfig) { c.Iterations = 0 })},
		{"NoSalt", mutate(func(c *StoreConfig) { c.Salt = nil })},
		{"NoKeyCheck", mutate(func(c *StoreConfig) { c.KeyCheck = nil })},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseStoreConfig(tc.data); !errors.Is(err, kerrors.ErrInvalidStoreConfig) {
				t.Errorf("Expected ErrInvalidStoreConfig, got: %v", err)
			}
		})
	}
}
