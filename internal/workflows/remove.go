package workflows

import (
	"context"

	"github.com/PolarWolf314/kanote/internal/audit"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	StoreOptions

	// ID must be a full note id. Prefixes are not accepted for deletion.
	ID string
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	ID string

	// Deleted is false when no note file existed.
	Deleted bool
}

// Remove deletes a note. Removing a note that does not exist is not an error.
func Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	session, err := openSession(ctx, opts.StoreOptions)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	deleted, err := session.Delete(opts.ID)
	if err != nil {
		return nil, err
	}

	if deleted {
		audit.Log(opts.Root, audit.Entry{Operation: "rm", NoteID: opts.ID})
	}

	return &RemoveResult{ID: opts.ID, Deleted: deleted}, nil
}
