// Package id generates identifiers for movements and audit entries.
// Movement keys are UUIDv7 strings so that inserts stay roughly time-ordered.
package id

import (
	"strings"

	"github.com/google/uuid"
)

// ID is a type alias for UUID.
type ID = uuid.UUID

// New generates a new UUIDv7.
func New() ID {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v
}

// NewKey returns a fresh movement key in canonical text form.
func NewKey() string {
	return New().String()
}

// NormalizeKey trims a caller supplied movement key.
// Keys are opaque text; they are not required to be valid UUIDs.
func NormalizeKey(key string) string {
	return strings.TrimSpace(key)
}

