package store

import "github.com/google/uuid"

// NewID returns a random (version 4) UUID string.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id is a canonical UUID string.
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
