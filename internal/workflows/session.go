package workflows

import (
	"context"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/PolarWolf314/kanote/internal/notes"
)

// StoreOptions locates and unlocks a store. It is embedded in the options of
// every workflow that reads or writes notes.
type StoreOptions struct {
	// Root is the store directory, already resolved by the caller.
	Root string

	// Password unlocks the store. Workflows never retain it.
	Password []byte

	// NotesOptions are passed through to notes.Unlock. Tests use this to
	// swap the clock or the permission hardener.
	NotesOptions []notes.Option
}

func openSession(ctx context.Context, opts StoreOptions) (*notes.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Root == "" {
		return nil, kerrors.ErrStoreNotInitialized
	}

	session, err := notes.Unlock(opts.Root, opts.Password, opts.NotesOptions...)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// resolveNoteID accepts a full id or a unique prefix of one.
func resolveNoteID(session *notes.Session, ref string) (string, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if notes.ValidNoteID(ref) {
		return ref, nil
	}
	if ref == "" {
		return "", kerrors.ErrNoteNotFound
	}

	list, err := session.List()
	if err != nil {
		return "", err
	}

	var matches []string
	for _, meta := range list {
		if strings.HasPrefix(meta.ID, ref) {
			matches = append(matches, meta.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", kerrors.ErrNoteNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d notes", kerrors.ErrAmbiguousNoteID, ref, len(matches))
	}
}
