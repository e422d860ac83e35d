package notes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/PolarWolf314/kanote/internal/configs"
	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/PolarWolf314/kanote/internal/secrets"
	"github.com/PolarWolf314/kanote/internal/utils"
	"golang.org/x/text/cases"
)

// Session is an unlocked store. It holds the master key until Close.
type Session struct {
	root     string
	config   *configs.StoreConfig
	key      *secrets.MasterKey
	hardener PermissionHardener
	now      func() time.Time
}

func newSession(root string, cfg *configs.StoreConfig, key *secrets.MasterKey, o *options) *Session {
	return &Session{
		root:     root,
		config:   cfg,
		key:      key,
		hardener: o.hardener,
		now:      o.now,
	}
}

// Root returns the store directory.
func (s *Session) Root() string {
	return s.root
}

// Iterations returns the KDF cost recorded in the store config.
func (s *Session) Iterations() int {
	return s.config.Iterations
}

// Close destroys the master key. Further operations return ErrSessionClosed.
func (s *Session) Close() {
	s.key.Destroy()
}

// Create stores a new note and returns it.
func (s *Session) Create(title, body string) (*Note, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	now := s.timestamp()
	note := &Note{
		NoteMeta: NoteMeta{
			ID:        NewNoteID(),
			Title:     title,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Body: body,
	}

	if err := s.writeNote(note, s.key); err != nil {
		return nil, err
	}

	return note, nil
}

// Read returns the note with id. The boolean is false when the note is absent
// or cannot be decoded under the session key; the two cases are not
// distinguished. Only I/O errors are returned.
func (s *Session) Read(id string) (*Note, bool, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, false, err
	}

	if !ValidNoteID(id) {
		return nil, false, nil
	}

	raw, err := os.ReadFile(s.notePath(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read note %s: %w", id, err)
	}

	note, ok := decodeOrSkip(raw, s.key, id)
	return note, ok, nil
}

// Update replaces the title and body of an existing note.
// createdAt is preserved and updatedAt refreshed.
// Returns ErrNoteNotFound when Read would report the note absent.
func (s *Session) Update(id, title, body string) (*Note, error) {
	note, ok, err := s.Read(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNoteNotFound, id)
	}

	note.Title = title
	note.Body = body
	note.UpdatedAt = s.timestamp()

	if err := s.writeNote(note, s.key); err != nil {
		return nil, err
	}

	return note, nil
}

// Delete removes the note file and reports whether it existed.
func (s *Session) Delete(id string) (bool, error) {
	if err := s.ensureOpen(); err != nil {
		return false, err
	}

	if !ValidNoteID(id) {
		return false, nil
	}

	err := os.Remove(s.notePath(id))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete note %s: %w", id, err)
	}

	return true, nil
}

// List returns every readable note, most recently updated first.
// Ties are broken by id. Unreadable files are skipped.
func (s *Session) List() ([]NoteMeta, error) {
	notes, err := s.scan()
	if err != nil {
		return nil, err
	}
	return metas(notes), nil
}

// Search returns the notes whose title or body contains query under Unicode
// case folding, in List order.
func (s *Session) Search(query string) ([]NoteMeta, error) {
	notes, err := s.scan()
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	needle := fold.String(query)
	matched := make([]*Note, 0, len(notes))
	for _, note := range notes {
		if strings.Contains(fold.String(note.Title), needle) ||
			strings.Contains(fold.String(note.Body), needle) {
			matched = append(matched, note)
		}
	}

	return metas(matched), nil
}

// scan decodes every note file in List order.
func (s *Session) scan() ([]*Note, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	ids, err := listNoteIDs(s.root)
	if err != nil {
		return nil, err
	}

	notes := make([]*Note, 0, len(ids))
	for _, id := range ids {
		raw, err := os.ReadFile(s.notePath(id))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read note %s: %w", id, err)
		}

		if note, ok := decodeOrSkip(raw, s.key, id); ok {
			notes = append(notes, note)
		}
	}

	sort.Slice(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.ID < b.ID
	})

	return notes, nil
}

func (s *Session) writeNote(note *Note, key *secrets.MasterKey) error {
	return writeNoteFile(s.root, note, key, s.hardener)
}

func (s *Session) notePath(id string) string {
	return notePath(s.root, id)
}

func (s *Session) timestamp() time.Time {
	return s.now().UTC()
}

func (s *Session) ensureOpen() error {
	if s.key.Destroyed() {
		return kerrors.ErrSessionClosed
	}
	return nil
}

func notePath(root, id string) string {
	return filepath.Join(configs.NotesPath(root), id+NoteFileSuffix)
}

// listNoteIDs returns the ids of every file in the notes directory that looks
// like a note file. A missing directory yields no ids.
func listNoteIDs(root string) ([]string, error) {
	entries, err := os.ReadDir(configs.NotesPath(root))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		id, ok := strings.CutSuffix(entry.Name(), NoteFileSuffix)
		if ok && ValidNoteID(id) {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func writeNoteFile(root string, note *Note, key *secrets.MasterKey, hardener PermissionHardener) error {
	data, err := encodeNote(note, key)
	if err != nil {
		return fmt.Errorf("failed to encrypt note %s: %w", note.ID, err)
	}

	dir := configs.NotesPath(root)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	path := notePath(root, note.ID)
	if err := utils.WriteFileAtomic(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write note %s: %w", note.ID, err)
	}
	hardener.Harden(path, false)

	return nil
}

func metas(notes []*Note) []NoteMeta {
	out := make([]NoteMeta, len(notes))
	for i, note := range notes {
		out[i] = note.NoteMeta
	}
	return out
}
