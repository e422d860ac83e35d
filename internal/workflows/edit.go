package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/kanote/internal/audit"
	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/PolarWolf314/kanote/internal/notes"
)

// EditOptions configures the edit workflow.
type EditOptions struct {
	StoreOptions

	// ID is a full note id or a unique prefix.
	ID string

	// Title and Body replace the stored values when non-nil.
	Title *string
	Body  *string
}

// EditResult contains the outcome of an edit operation.
type EditResult struct {
	Note *notes.Note

	// Changed is false when neither field differed from the stored note.
	// The note is still rewritten with a fresh updatedAt.
	Changed bool
}

// Edit replaces the title and/or body of an existing note, keeping its
// creation time.
//
// Returns ErrNoteNotFound if no readable note matches ID.
func Edit(ctx context.Context, opts EditOptions) (*EditResult, error) {
	session, err := openSession(ctx, opts.StoreOptions)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	id, err := resolveNoteID(session, opts.ID)
	if err != nil {
		return nil, err
	}

	current, ok, err := session.Read(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNoteNotFound, id)
	}

	title, body := current.Title, current.Body
	if opts.Title != nil {
		title = *opts.Title
	}
	if opts.Body != nil {
		body = *opts.Body
	}

	updated, err := session.Update(id, title, body)
	if err != nil {
		return nil, err
	}

	audit.Log(opts.Root, audit.Entry{Operation: "edit", NoteID: id})

	return &EditResult{
		Note:    updated,
		Changed: title != current.Title || body != current.Body,
	}, nil
}
