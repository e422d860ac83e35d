package workflows

import (
	"context"

	"github.com/PolarWolf314/kanote/internal/audit"
	"github.com/PolarWolf314/kanote/internal/notes"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	StoreOptions

	// Limit is the maximum number of notes to return. 0 means no limit.
	Limit int
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	// Notes are ordered most recently updated first.
	Notes []notes.NoteMeta

	// Total is the number of readable notes before Limit was applied.
	Total int
}

// List returns the metadata of every readable note.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	session, err := openSession(ctx, opts.StoreOptions)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	metas, err := session.List()
	if err != nil {
		return nil, err
	}

	audit.Log(opts.Root, audit.Entry{Operation: "list", NotesCount: len(metas)})

	return &ListResult{
		Notes: limit(metas, opts.Limit),
		Total: len(metas),
	}, nil
}

func limit(metas []notes.NoteMeta, n int) []notes.NoteMeta {
	if n > 0 && len(metas) > n {
		return metas[:n]
	}
	return metas
}
