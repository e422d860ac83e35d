package notes

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/kanote/internal/configs"
	kerrors "github.com/PolarWolf314/kanote/internal/errors"
)

func TestExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "store")

	exists, err := Exists(root)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Fatal("Expected no store before Initialize")
	}

	if err := Initialize(root, []byte("pw"), WithIterations(testIterations)); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	exists, err = Exists(root)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Fatal("Expected store after Initialize")
	}
}

func TestInitialize_AlreadyInitialized(t *testing.T) {
	root := setupStore(t, "p1")

	err := Initialize(root, []byte("p2"), WithIterations(testIterations))
	if !errors.Is(err, kerrors.ErrStoreAlreadyInitialized) {
		t.Fatalf("Expected ErrStoreAlreadyInitialized, got: %v", err)
	}

	// The original password still works.
	openStore(t, root, "p1", nil)
}

func TestInitialize_HardensStorePaths(t *testing.T) {
	root := filepath.Join(t.TempDir(), "store")
	hardener := &recordingHardener{}

	if err := Initialize(root, []byte("pw"), WithIterations(testIterations), WithHardener(hardener)); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	for _, path := range []string{root, configs.NotesPath(root), configs.StoreConfigPath(root)} {
		if !hardener.hardened(path) {
			t.Errorf("Expected %s to be hardened", path)
		}
	}
}

func TestUnlock_NotInitialized(t *testing.T) {
	_, err := Unlock(t.TempDir(), []byte("pw"))
	if !errors.Is(err, kerrors.ErrStoreNotInitialized) {
		t.Fatalf("Expected ErrStoreNotInitialized, got: %v", err)
	}
}

func TestUnlock_WrongPassword(t *testing.T) {
	root := setupStore(t, "right")

	_, err := Unlock(root, []byte("wrong"))
	if !errors.Is(err, kerrors.ErrInvalidPassword) {
		t.Fatalf("Expected ErrInvalidPassword, got: %v", err)
	}
}

func TestUnlock_HonorsPersistedIterations(t *testing.T) {
	root := setupStore(t, "pw")

	s := openStore(t, root, "pw", nil)
	if s.Iterations() != testIterations {
		t.Errorf("Expected iterations %d, got %d", testIterations, s.Iterations())
	}
	if s.Root() != root {
		t.Errorf("Expected root %s, got %s", root, s.Root())
	}
}
