package store

import (
	"context"
	"fmt"

	"nundu/internal/models"
)

// RecordStore persists JSON records grouped by entity collection.
type RecordStore interface {
	// List returns every record of a collection in insertion order.
	List(ctx context.Context, collection string) ([]models.Record, error)
	Get(ctx context.Context, collection, id string) (models.Record, error)
	// Put inserts rec, or replaces the record with the same id in place.
	Put(ctx context.Context, collection string, rec models.Record) error
	Delete(ctx context.Context, collection, id string) error
	// Counts returns the number of records per collection.
	Counts(ctx context.Context) (map[string]int, error)
	// Location describes where data lives, for diagnostics.
	Location() string
	Close() error
}

var (
	_ RecordStore = (*FileStore)(nil)
	_ RecordStore = (*SQLiteStore)(nil)
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open opens the store for backend rooted at dataDir.
func Open(backend, dataDir string) (RecordStore, error) {
	switch backend {
	case "", BackendJSON:
		return NewFileStore(dataDir)
	case BackendSQLite:
		return OpenSQLite(sqlitePath(dataDir))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
