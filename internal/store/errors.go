package store

import "errors"

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrUnknownBackend is returned by Open for an unsupported storage backend.
	ErrUnknownBackend = errors.New("unknown storage backend")
	// ErrMissingID is returned by Put for a record without an id.
	ErrMissingID = errors.New("record id is required")
)
