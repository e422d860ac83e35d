package workflows

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/kanote/internal/configs"
	"github.com/PolarWolf314/kanote/internal/notes"
)

const testIterations = 10

// withTempUserSettings points the user config at a temp directory so tests
// never read the developer's real config.toml.
func withTempUserSettings(t *testing.T) {
	t.Helper()
	tempDir := t.TempDir()
	original := configs.UserKanoteSettings
	configs.UserKanoteSettings = &configs.UserSettings{
		UserConfigsPath:  filepath.Join(tempDir, "config"),
		DefaultStorePath: filepath.Join(tempDir, "data", "kanote"),
	}
	t.Cleanup(func() {
		configs.UserKanoteSettings = original
	})
}

// setupStore runs the init workflow with a cheap KDF and returns store options
// for password.
func setupStore(t *testing.T, password string) StoreOptions {
	t.Helper()
	withTempUserSettings(t)

	root := filepath.Join(t.TempDir(), "store")
	_, err := Init(context.Background(), InitOptions{
		Root:         root,
		Password:     []byte(password),
		Iterations:   testIterations,
		NotesOptions: []notes.Option{notes.WithHardener(notes.NoopHardener{})},
	})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	return storeOptions(root, password)
}

func storeOptions(root, password string) StoreOptions {
	return StoreOptions{
		Root:         root,
		Password:     []byte(password),
		NotesOptions: []notes.Option{notes.WithHardener(notes.NoopHardener{})},
	}
}

func mustAdd(t *testing.T, store StoreOptions, title, body string) *notes.Note {
	t.Helper()
	result, err := Add(context.Background(), AddOptions{StoreOptions: store, Title: title, Body: body})
	if err != nil {
		t.Fatalf("Add(%q) failed: %v", title, err)
	}
	return result.Note
}

func ptr(s string) *string {
	return &s
}
