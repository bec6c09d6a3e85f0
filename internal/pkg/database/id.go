package database

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7 string. Every driver uses it so that ids
// look the same regardless of where they are stored.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
