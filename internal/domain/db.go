package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Each implementation (SQLite, MongoDB) owns its own schema or index
// setup, so the storage backend can be swapped without touching services.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
