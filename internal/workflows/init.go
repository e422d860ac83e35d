package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/kanote/internal/audit"
	"github.com/PolarWolf314/kanote/internal/configs"
	kerrors "github.com/PolarWolf314/kanote/internal/errors"
	"github.com/PolarWolf314/kanote/internal/notes"
	"github.com/PolarWolf314/kanote/internal/secrets"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Root is the directory to create the store in.
	Root string

	// Password protects the new store. Must not be empty.
	Password []byte

	// Iterations overrides the KDF cost. When 0 the user config's
	// [kdf] iterations is used, falling back to the default.
	Iterations int

	// NotesOptions are passed through to notes.Initialize.
	NotesOptions []notes.Option
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// Root is the directory the store was created in.
	Root string

	// Iterations is the KDF cost recorded in the new config.
	Iterations int
}

// Init creates a new empty note store.
//
// Returns ErrEmptyPassword if no password was supplied.
// Returns ErrStoreAlreadyInitialized if Root already holds a store.
// Returns ErrInvalidIterations if the resolved iteration count is not positive.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(opts.Password) == 0 {
		return nil, kerrors.ErrEmptyPassword
	}

	iterations, err := resolveIterations(opts.Iterations)
	if err != nil {
		return nil, err
	}

	initOpts := append([]notes.Option{notes.WithIterations(iterations)}, opts.NotesOptions...)
	if err := notes.Initialize(opts.Root, opts.Password, initOpts...); err != nil {
		return nil, err
	}

	audit.Log(opts.Root, audit.Entry{Operation: "init"})

	return &InitResult{
		Root:       opts.Root,
		Iterations: iterations,
	}, nil
}

func resolveIterations(explicit int) (int, error) {
	if explicit < 0 {
		return 0, fmt.Errorf("%w: %d", kerrors.ErrInvalidIterations, explicit)
	}
	if explicit > 0 {
		return explicit, nil
	}

	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return 0, err
	}
	switch {
	case userConfig.KDF.Iterations < 0:
		return 0, fmt.Errorf("%w: %d in %s", kerrors.ErrInvalidIterations, userConfig.KDF.Iterations, configs.UserConfigPath())
	case userConfig.KDF.Iterations > 0:
		return userConfig.KDF.Iterations, nil
	}

	return secrets.DefaultIterations, nil
}
