package notes

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

const testIterations = 10

// fakeClock advances one second on every call so updatedAt ordering is deterministic.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// recordingHardener remembers every path it was asked to harden.
type recordingHardener struct {
	mu    sync.Mutex
	paths map[string]bool
}

func (h *recordingHardener) Harden(path string, isDir bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.paths == nil {
		h.paths = make(map[string]bool)
	}
	h.paths[path] = isDir
}

func (h *recordingHardener) hardened(path string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.paths[path]
	return ok
}

// setupStore initializes a store with a cheap KDF and returns its root.
func setupStore(t *testing.T, password string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "store")
	if err := Initialize(root, []byte(password), WithIterations(testIterations), WithHardener(NoopHardener{})); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return root
}

// openStore unlocks root with a fake clock and registers Close for cleanup.
func openStore(t *testing.T, root, password string, clock *fakeClock) *Session {
	t.Helper()
	if clock == nil {
		clock = newFakeClock()
	}
	s, err := Unlock(root, []byte(password), WithClock(clock.Now), WithHardener(NoopHardener{}))
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func mustCreate(t *testing.T, s *Session, title, body string) *Note {
	t.Helper()
	note, err := s.Create(title, body)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", title, err)
	}
	return note
}

func mustRead(t *testing.T, s *Session, id string) *Note {
	t.Helper()
	note, ok, err := s.Read(id)
	if err != nil {
		t.Fatalf("Read(%s) failed: %v", id, err)
	}
	if !ok {
		t.Fatalf("Read(%s) reported the note absent", id)
	}
	return note
}

func writeRaw(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
