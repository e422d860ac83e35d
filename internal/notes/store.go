package notes

import (
	"time"

	"github.com/PolarWolf314/kanote/internal/configs"
	"github.com/PolarWolf314/kanote/internal/secrets"
)

type options struct {
	hardener   PermissionHardener
	now        func() time.Time
	iterations int
}

// Option configures Initialize and Unlock.
type Option func(*options)

// WithHardener replaces the platform default PermissionHardener.
func WithHardener(h PermissionHardener) Option {
	return func(o *options) {
		o.hardener = h
	}
}

// WithClock replaces time.Now for note timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIterations sets the KDF cost for Initialize. It has no effect on
// Unlock, which always honors the persisted count.
func WithIterations(n int) Option {
	return func(o *options) {
		o.iterations = n
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		hardener:   DefaultHardener(),
		now:        time.Now,
		iterations: secrets.DefaultIterations,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Exists reports whether root holds an initialized store.
func Exists(root string) (bool, error) {
	return configs.StoreConfigExists(root)
}

// Initialize creates a new store at root protected by password.
// Returns ErrStoreAlreadyInitialized if root already has a config.
func Initialize(root string, password []byte, opts ...Option) error {
	o := buildOptions(opts)

	_, key, err := configs.InitializeStoreConfig(root, password, o.iterations)
	if err != nil {
		return err
	}
	key.Destroy()

	o.hardener.Harden(root, true)
	o.hardener.Harden(configs.NotesPath(root), true)
	o.hardener.Harden(configs.StoreConfigPath(root), false)

	return nil
}

// Unlock verifies password against the store at root and returns a session.
//
// Returns ErrStoreNotInitialized if root has no config and ErrInvalidPassword
// if the key check fails. An interrupted password change is completed before
// the session is returned.
func Unlock(root string, password []byte, opts ...Option) (*Session, error) {
	o := buildOptions(opts)

	cfg, err := configs.LoadStoreConfig(root)
	if err != nil {
		return nil, err
	}

	journal, err := loadJournal(root)
	if err != nil {
		return nil, err
	}
	if journal != nil {
		return recoverRotation(root, cfg, journal, password, o)
	}

	key, err := cfg.Unlock(password)
	if err != nil {
		return nil, err
	}

	return newSession(root, cfg, key, o), nil
}
