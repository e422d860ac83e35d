package workflows

import (
	"context"

	"github.com/PolarWolf314/kanote/internal/audit"
	"github.com/PolarWolf314/kanote/internal/notes"
)

// AddOptions configures the add workflow.
type AddOptions struct {
	StoreOptions

	Title string
	Body  string
}

// AddResult contains the outcome of an add operation.
type AddResult struct {
	Note *notes.Note
}

// Add encrypts and stores a new note.
//
// Returns ErrStoreNotInitialized if the store does not exist.
// Returns ErrInvalidPassword if the password does not unlock the store.
func Add(ctx context.Context, opts AddOptions) (*AddResult, error) {
	session, err := openSession(ctx, opts.StoreOptions)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	note, err := session.Create(opts.Title, opts.Body)
	if err != nil {
		return nil, err
	}

	audit.Log(opts.Root, audit.Entry{Operation: "add", NoteID: note.ID})

	return &AddResult{Note: note}, nil
}
