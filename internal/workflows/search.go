package workflows

import (
	"context"

	"github.com/PolarWolf314/kanote/internal/audit"
	"github.com/PolarWolf314/kanote/internal/notes"
)

// SearchOptions configures the search workflow.
type SearchOptions struct {
	StoreOptions

	// Query is matched case-insensitively against titles and bodies.
	Query string

	// Limit is the maximum number of notes to return. 0 means no limit.
	Limit int
}

// SearchResult contains the outcome of a search operation.
type SearchResult struct {
	Notes []notes.NoteMeta
	Total int
}

// Search returns the notes whose title or body contains Query.
// The query itself is not written to the audit log, only its length.
func Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	session, err := openSession(ctx, opts.StoreOptions)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	metas, err := session.Search(opts.Query)
	if err != nil {
		return nil, err
	}

	audit.Log(opts.Root, audit.Entry{
		Operation:  "search",
		NotesCount: len(metas),
		QueryLen:   len(opts.Query),
	})

	return &SearchResult{
		Notes: limit(metas, opts.Limit),
		Total: len(metas),
	}, nil
}
