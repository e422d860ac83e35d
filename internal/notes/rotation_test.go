package notes

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/PolarWolf314/kanote/internal/configs"
	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/PolarWolf314/kanote/internal/secrets"
)

func TestChangePassword(t *testing.T) {
	root := setupStore(t, "p1")
	s := openStore(t, root, "p1", nil)

	note := mustCreate(t, s, "Bank", "1234")

	result, err := s.ChangePassword([]byte("p2"))
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if result.Rewritten != 1 || result.Skipped != 0 {
		t.Errorf("Expected 1 rewritten and 0 skipped, got %+v", result)
	}

	// The live session keeps working under the new key.
	if read := mustRead(t, s, note.ID); read.Body != "1234" {
		t.Errorf("Expected body 1234 from live session, got %q", read.Body)
	}
	s.Close()

	if _, err := Unlock(root, []byte("p1"), WithHardener(NoopHardener{})); !errors.Is(err, kerrors.ErrInvalidPassword) {
		t.Fatalf("Expected old password to fail with ErrInvalidPassword, got: %v", err)
	}

	reopened := openStore(t, root, "p2", nil)
	if read := mustRead(t, reopened, note.ID); read.Body != "1234" {
		t.Errorf("Expected body 1234, got %q", read.Body)
	}

	if pending, _ := RotationPending(root); pending {
		t.Error("Expected no rotation journal after a completed change")
	}
}

func TestChangePassword_PreservesEveryNote(t *testing.T) {
	root := setupStore(t, "p1")
	s := openStore(t, root, "p1", nil)

	want := make(map[string]*Note)
	for i := 0; i < 12; i++ {
		note := mustCreate(t, s, fmt.Sprintf("note %d", i), fmt.Sprintf("body %d", i))
		want[note.ID] = note
	}
	before, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if _, err := s.ChangePassword([]byte("p2")); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	s.Close()

	reopened := openStore(t, root, "p2", nil)
	after, err := reopened.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("Expected %d notes after rotation, got %d", len(before), len(after))
	}

	for i, meta := range after {
		if meta.ID != before[i].ID {
			t.Errorf("Position %d changed: %s -> %s", i, before[i].ID, meta.ID)
		}
		read := mustRead(t, reopened, meta.ID)
		orig := want[meta.ID]
		if read.Title != orig.Title || read.Body != orig.Body {
			t.Errorf("Note %s changed: %q/%q -> %q/%q", meta.ID, orig.Title, orig.Body, read.Title, read.Body)
		}
		if !read.CreatedAt.Equal(orig.CreatedAt) || !read.UpdatedAt.Equal(orig.UpdatedAt) {
			t.Errorf("Note %s timestamps changed", meta.ID)
		}
	}
}

func TestChangePassword_SkipsForeignNotes(t *testing.T) {
	root := setupStore(t, "p1")
	s := openStore(t, root, "p1", nil)
	mustCreate(t, s, "mine", "body")

	foreignRoot := setupStore(t, "other")
	foreign := openStore(t, foreignRoot, "other", nil)
	stranger := mustCreate(t, foreign, "theirs", "body")
	data, err := os.ReadFile(notePath(foreignRoot, stranger.ID))
	if err != nil {
		t.Fatalf("Failed to read foreign note: %v", err)
	}
	writeRaw(t, notePath(root, stranger.ID), data)

	result, err := s.ChangePassword([]byte("p2"))
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if result.Rewritten != 1 || result.Skipped != 1 {
		t.Errorf("Expected 1 rewritten and 1 skipped, got %+v", result)
	}

	after, err := os.ReadFile(notePath(root, stranger.ID))
	if err != nil {
		t.Fatalf("Foreign note should be left in place: %v", err)
	}
	if string(after) != string(data) {
		t.Error("Foreign note should be left untouched")
	}
}

// interruptRotation leaves root as if ChangePassword from p1 to p2 crashed
// after rewriting only the first note. It returns the ids of every note.
func interruptRotation(t *testing.T, root string, swapConfig bool) []string {
	t.Helper()

	s, err := Unlock(root, []byte("p1"), WithClock(newFakeClock().Now), WithHardener(NoopHardener{}))
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	defer s.Close()

	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(ids, mustCreate(t, s, fmt.Sprintf("note %d", i), fmt.Sprintf("body %d", i)).ID)
	}

	newCfg, newKey, err := s.config.Rotate(s.key, []byte("p2"))
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	defer newKey.Destroy()

	journal, err := newJournal(s.config, newCfg, s.key, newKey)
	if err != nil {
		t.Fatalf("newJournal failed: %v", err)
	}
	if err := saveJournal(root, journal, NoopHardener{}); err != nil {
		t.Fatalf("saveJournal failed: %v", err)
	}

	first := mustRead(t, s, ids[0])
	if err := writeNoteFile(root, first, newKey, NoopHardener{}); err != nil {
		t.Fatalf("writeNoteFile failed: %v", err)
	}

	if swapConfig {
		if err := configs.SaveStoreConfig(root, newCfg); err != nil {
			t.Fatalf("SaveStoreConfig failed: %v", err)
		}
	}

	return ids
}

func TestUnlock_RecoversInterruptedRotation(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		swapConfig bool
	}{
		{"old password", "p1", false},
		{"new password", "p2", false},
		{"old password after config swap", "p1", true},
		{"new password after config swap", "p2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := setupStore(t, "p1")
			ids := interruptRotation(t, root, tt.swapConfig)

			if pending, _ := RotationPending(root); !pending {
				t.Fatal("Expected a pending rotation")
			}

			s := openStore(t, root, tt.password, nil)
			for i, id := range ids {
				if read := mustRead(t, s, id); read.Body != fmt.Sprintf("body %d", i) {
					t.Errorf("Note %d: expected body %d, got %q", i, i, read.Body)
				}
			}
			s.Close()

			if pending, _ := RotationPending(root); pending {
				t.Error("Expected journal removed after recovery")
			}

			if _, err := Unlock(root, []byte("p1"), WithHardener(NoopHardener{})); !errors.Is(err, kerrors.ErrInvalidPassword) {
				t.Errorf("Expected p1 rejected after recovery, got: %v", err)
			}
			after := openStore(t, root, "p2", nil)
			if list, _ := after.List(); len(list) != len(ids) {
				t.Errorf("Expected %d notes under p2, got %d", len(ids), len(list))
			}
		})
	}
}

func TestUnlock_InterruptedRotationWrongPassword(t *testing.T) {
	root := setupStore(t, "p1")
	interruptRotation(t, root, false)

	_, err := Unlock(root, []byte("p3"), WithHardener(NoopHardener{}))
	if !errors.Is(err, kerrors.ErrInvalidPassword) {
		t.Fatalf("Expected ErrInvalidPassword, got: %v", err)
	}

	if pending, _ := RotationPending(root); !pending {
		t.Error("A failed unlock must leave the journal in place")
	}
}

func TestChangePassword_RetryAfterFailedChange(t *testing.T) {
	root := setupStore(t, "p1")
	s := openStore(t, root, "p1", nil)

	a := mustCreate(t, s, "a", "alpha")
	b := mustCreate(t, s, "b", "beta")

	// A p1 to p2 change that stopped after rewriting one note.
	newCfg, newKey, err := s.config.Rotate(s.key, []byte("p2"))
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	defer newKey.Destroy()

	journal, err := newJournal(s.config, newCfg, s.key, newKey)
	if err != nil {
		t.Fatalf("newJournal failed: %v", err)
	}
	if err := saveJournal(root, journal, NoopHardener{}); err != nil {
		t.Fatalf("saveJournal failed: %v", err)
	}
	if err := writeNoteFile(root, mustRead(t, s, a.ID), newKey, NoopHardener{}); err != nil {
		t.Fatalf("writeNoteFile failed: %v", err)
	}

	result, err := s.ChangePassword([]byte("p3"))
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if result.Skipped != 0 {
		t.Errorf("Expected no skipped notes, got %+v", result)
	}

	if pending, _ := RotationPending(root); pending {
		t.Error("Expected no rotation journal after the retry")
	}

	for _, password := range []string{"p1", "p2"} {
		if _, err := Unlock(root, []byte(password), WithHardener(NoopHardener{})); !errors.Is(err, kerrors.ErrInvalidPassword) {
			t.Errorf("Expected %s rejected, got: %v", password, err)
		}
	}

	reopened := openStore(t, root, "p3", nil)
	for _, want := range []*Note{a, b} {
		if read := mustRead(t, reopened, want.ID); read.Body != want.Body {
			t.Errorf("Note %s: expected %q, got %q", want.Title, want.Body, read.Body)
		}
	}
}

func TestUnlock_CorruptJournal(t *testing.T) {
	root := setupStore(t, "p1")
	writeRaw(t, journalPath(root), []byte("{not json"))

	_, err := Unlock(root, []byte("p1"), WithHardener(NoopHardener{}))
	if !errors.Is(err, kerrors.ErrInvalidStoreConfig) {
		t.Fatalf("Expected ErrInvalidStoreConfig, got: %v", err)
	}
}

func TestUnlock_JournalFromAnotherStore(t *testing.T) {
	root := setupStore(t, "p1")
	otherRoot := setupStore(t, "p1")
	interruptRotation(t, otherRoot, false)

	data, err := os.ReadFile(journalPath(otherRoot))
	if err != nil {
		t.Fatalf("Failed to read journal: %v", err)
	}
	writeRaw(t, journalPath(root), data)

	_, err = Unlock(root, []byte("p1"), WithHardener(NoopHardener{}))
	if !errors.Is(err, kerrors.ErrInvalidStoreConfig) {
		t.Fatalf("Expected ErrInvalidStoreConfig, got: %v", err)
	}
}

func TestJournalKeys_TamperedWrap(t *testing.T) {
	root := setupStore(t, "p1")
	interruptRotation(t, root, false)

	journal, err := loadJournal(root)
	if err != nil {
		t.Fatalf("loadJournal failed: %v", err)
	}
	tampered := journal.NewKeyUnderOld.Clone()
	tampered.MAC[0] ^= 0xff
	journal.NewKeyUnderOld = tampered

	_, _, err = journalKeys(journal, []byte("p1"))
	if !errors.Is(err, kerrors.ErrInvalidStoreConfig) {
		t.Fatalf("Expected ErrInvalidStoreConfig, got: %v", err)
	}
}

func TestRotationPending(t *testing.T) {
	root := setupStore(t, "p1")

	pending, err := RotationPending(root)
	if err != nil {
		t.Fatalf("RotationPending failed: %v", err)
	}
	if pending {
		t.Error("Expected no pending rotation on a fresh store")
	}

	key, err := secrets.NewMasterKey(make([]byte, secrets.KeySize))
	if err != nil {
		t.Fatalf("NewMasterKey failed: %v", err)
	}
	defer key.Destroy()

	cfg, err := configs.LoadStoreConfig(root)
	if err != nil {
		t.Fatalf("LoadStoreConfig failed: %v", err)
	}
	journal, err := newJournal(cfg, cfg, key, key)
	if err != nil {
		t.Fatalf("newJournal failed: %v", err)
	}
	if err := saveJournal(root, journal, NoopHardener{}); err != nil {
		t.Fatalf("saveJournal failed: %v", err)
	}

	if pending, _ := RotationPending(root); !pending {
		t.Error("Expected a pending rotation after saveJournal")
	}
}
