package domain

import "context"

// Database defines lifecycle operations for the underlying data store.
// The implementation owns its own migration files and strategy, keeping
// the storage backend swappable behind the repository interfaces.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
