package notes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/kanote/internal/configs"
	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/PolarWolf314/kanote/internal/secrets"
	"github.com/PolarWolf314/kanote/internal/utils"
)

// JournalFileName marks a password change that has not finished.
const JournalFileName = "rotation.json"

// rotationJournal is everything needed to finish a password change with
// either the old or the new password.
type rotationJournal struct {
	Old            *configs.StoreConfig      `json:"old"`
	New            *configs.StoreConfig      `json:"new"`
	NewKeyUnderOld *secrets.EncryptedPayload `json:"newKeyUnderOld"`
	OldKeyUnderNew *secrets.EncryptedPayload `json:"oldKeyUnderNew"`
}

// RotationResult summarizes a completed password change.
type RotationResult struct {
	// Rewritten counts notes re-encrypted under the new key.
	Rewritten int

	// Skipped counts note files readable under neither key.
	Skipped int
}

// ChangePassword re-encrypts every note under a key derived from newPassword
// and then replaces the store config.
//
// A journal is written first. If this call fails part way, the session keeps
// the old key and the next Unlock with either password completes the change.
// Notes that are unreadable under the current key are left untouched. A
// change left pending by an earlier failure is finished before the new one
// starts.
func (s *Session) ChangePassword(newPassword []byte) (*RotationResult, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	if err := s.finishPendingRotation(); err != nil {
		return nil, err
	}

	newCfg, newKey, err := s.config.Rotate(s.key, newPassword)
	if err != nil {
		return nil, err
	}

	journal, err := newJournal(s.config, newCfg, s.key, newKey)
	if err != nil {
		newKey.Destroy()
		return nil, err
	}

	if err := saveJournal(s.root, journal, s.hardener); err != nil {
		newKey.Destroy()
		return nil, err
	}

	result, err := completeRotation(s.root, journal, s.key, newKey, s.hardener)
	if err != nil {
		newKey.Destroy()
		return nil, err
	}

	s.key.Destroy()
	s.key = newKey
	s.config = newCfg

	return result, nil
}

// finishPendingRotation completes a journal left on disk, using the session
// key for whichever side of the journal it belongs to, and moves the session
// onto the journal's new config.
func (s *Session) finishPendingRotation() error {
	journal, err := loadJournal(s.root)
	if err != nil || journal == nil {
		return err
	}

	var oldKey, newKey *secrets.MasterKey
	switch {
	case bytes.Equal(s.config.Salt, journal.Old.Salt) && journal.Old.Verify(s.key):
		oldKey = s.key
		newKey, err = s.key.Unwrap(journal.NewKeyUnderOld)
		if err != nil || !journal.New.Verify(newKey) {
			if newKey != nil {
				newKey.Destroy()
			}
			return fmt.Errorf("%w: rotation journal is corrupt", kerrors.ErrInvalidStoreConfig)
		}
	case bytes.Equal(s.config.Salt, journal.New.Salt) && journal.New.Verify(s.key):
		newKey = s.key
		oldKey, err = s.key.Unwrap(journal.OldKeyUnderNew)
		if err != nil || !journal.Old.Verify(oldKey) {
			if oldKey != nil {
				oldKey.Destroy()
			}
			return fmt.Errorf("%w: rotation journal is corrupt", kerrors.ErrInvalidStoreConfig)
		}
	default:
		return fmt.Errorf("%w: rotation journal does not match store config", kerrors.ErrInvalidStoreConfig)
	}

	if _, err := completeRotation(s.root, journal, oldKey, newKey, s.hardener); err != nil {
		if newKey != s.key {
			newKey.Destroy()
		}
		return err
	}

	if oldKey == s.key {
		s.key.Destroy()
		s.key = newKey
	} else {
		oldKey.Destroy()
	}
	s.config = journal.New

	return nil
}

func newJournal(oldCfg, newCfg *configs.StoreConfig, oldKey, newKey *secrets.MasterKey) (*rotationJournal, error) {
	newUnderOld, err := oldKey.Wrap(newKey)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap new key: %w", err)
	}

	oldUnderNew, err := newKey.Wrap(oldKey)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap old key: %w", err)
	}

	return &rotationJournal{
		Old:            oldCfg,
		New:            newCfg,
		NewKeyUnderOld: newUnderOld,
		OldKeyUnderNew: oldUnderNew,
	}, nil
}

// completeRotation runs the note pass, installs the new config and removes
// the journal. Every step is safe to repeat.
func completeRotation(root string, journal *rotationJournal, oldKey, newKey *secrets.MasterKey, hardener PermissionHardener) (*RotationResult, error) {
	result, err := reencryptNotes(root, oldKey, newKey, hardener)
	if err != nil {
		return nil, err
	}

	if err := configs.SaveStoreConfig(root, journal.New); err != nil {
		return nil, err
	}
	hardener.Harden(configs.StoreConfigPath(root), false)

	if err := os.Remove(journalPath(root)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove rotation journal: %w", err)
	}

	return result, nil
}

// reencryptNotes moves every note readable under oldKey to newKey. Notes
// already readable under newKey are left alone.
func reencryptNotes(root string, oldKey, newKey *secrets.MasterKey, hardener PermissionHardener) (*RotationResult, error) {
	ids, err := listNoteIDs(root)
	if err != nil {
		return nil, err
	}

	result := &RotationResult{}
	for _, id := range ids {
		raw, err := os.ReadFile(notePath(root, id))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read note %s: %w", id, err)
		}

		if _, ok := decodeOrSkip(raw, newKey, id); ok {
			continue
		}

		note, ok := decodeOrSkip(raw, oldKey, id)
		if !ok {
			result.Skipped++
			continue
		}

		if err := writeNoteFile(root, note, newKey, hardener); err != nil {
			return nil, err
		}
		result.Rewritten++
	}

	return result, nil
}

// recoverRotation finishes an interrupted password change. password may be
// either the old or the new one.
func recoverRotation(root string, live *configs.StoreConfig, journal *rotationJournal, password []byte, o *options) (*Session, error) {
	if !bytes.Equal(live.Salt, journal.Old.Salt) && !bytes.Equal(live.Salt, journal.New.Salt) {
		return nil, fmt.Errorf("%w: rotation journal does not match store config", kerrors.ErrInvalidStoreConfig)
	}

	oldKey, newKey, err := journalKeys(journal, password)
	if err != nil {
		return nil, err
	}
	defer oldKey.Destroy()

	if _, err := completeRotation(root, journal, oldKey, newKey, o.hardener); err != nil {
		newKey.Destroy()
		return nil, err
	}

	return newSession(root, journal.New, newKey, o), nil
}

// journalKeys unlocks whichever side of the journal password belongs to and
// unwraps the other key.
func journalKeys(journal *rotationJournal, password []byte) (*secrets.MasterKey, *secrets.MasterKey, error) {
	var oldKey, newKey *secrets.MasterKey

	oldKey, err := journal.Old.Unlock(password)
	switch {
	case err == nil:
		newKey, err = oldKey.Unwrap(journal.NewKeyUnderOld)
		if err != nil {
			oldKey.Destroy()
			return nil, nil, fmt.Errorf("%w: rotation journal is corrupt", kerrors.ErrInvalidStoreConfig)
		}
	case errors.Is(err, kerrors.ErrInvalidPassword):
		newKey, err = journal.New.Unlock(password)
		if err != nil {
			return nil, nil, err
		}
		oldKey, err = newKey.Unwrap(journal.OldKeyUnderNew)
		if err != nil {
			newKey.Destroy()
			return nil, nil, fmt.Errorf("%w: rotation journal is corrupt", kerrors.ErrInvalidStoreConfig)
		}
	default:
		return nil, nil, err
	}

	if !journal.Old.Verify(oldKey) || !journal.New.Verify(newKey) {
		oldKey.Destroy()
		newKey.Destroy()
		return nil, nil, fmt.Errorf("%w: rotation journal is corrupt", kerrors.ErrInvalidStoreConfig)
	}

	return oldKey, newKey, nil
}

func journalPath(root string) string {
	return filepath.Join(root, JournalFileName)
}

// RotationPending reports whether root has an unfinished password change.
func RotationPending(root string) (bool, error) {
	return utils.FileExists(journalPath(root))
}

func saveJournal(root string, journal *rotationJournal, hardener PermissionHardener) error {
	data, err := json.MarshalIndent(journal, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode rotation journal: %w", err)
	}

	path := journalPath(root)
	if err := utils.WriteFileAtomic(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write rotation journal: %w", err)
	}
	hardener.Harden(path, false)

	return nil
}

// loadJournal returns nil when no password change is in flight.
func loadJournal(root string) (*rotationJournal, error) {
	data, err := os.ReadFile(journalPath(root))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rotation journal: %w", err)
	}

	journal := &rotationJournal{}
	if err := json.Unmarshal(data, journal); err != nil {
		return nil, fmt.Errorf("%w: rotation journal: %v", kerrors.ErrInvalidStoreConfig, err)
	}
	if journal.Old == nil || journal.New == nil || journal.NewKeyUnderOld == nil || journal.OldKeyUnderNew == nil {
		return nil, fmt.Errorf("%w: rotation journal is incomplete", kerrors.ErrInvalidStoreConfig)
	}
	if err := journal.Old.Validate(); err != nil {
		return nil, err
	}
	if err := journal.New.Validate(); err != nil {
		return nil, err
	}

	return journal, nil
}
