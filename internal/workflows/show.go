package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/kanote/internal/audit"
	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/PolarWolf314/kanote/internal/notes"
)

// ShowOptions configures the show workflow.
type ShowOptions struct {
	StoreOptions

	// ID is a full note id or a unique prefix.
	ID string
}

// ShowResult contains the outcome of a show operation.
type ShowResult struct {
	Note *notes.Note
}

// Show decrypts a single note.
//
// Returns ErrNoteNotFound if no readable note matches ID.
// Returns ErrAmbiguousNoteID if ID is a prefix of several notes.
func Show(ctx context.Context, opts ShowOptions) (*ShowResult, error) {
	session, err := openSession(ctx, opts.StoreOptions)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	id, err := resolveNoteID(session, opts.ID)
	if err != nil {
		return nil, err
	}

	note, ok, err := session.Read(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNoteNotFound, id)
	}

	audit.Log(opts.Root, audit.Entry{Operation: "show", NoteID: id})

	return &ShowResult{Note: note}, nil
}
