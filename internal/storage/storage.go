// Package storage persists the budget document. A Backend stores opaque
// bytes; Encode and Decode convert between those bytes and a model.State.
package storage

import (
	"context"
	"errors"
)

// DocumentKey is the key the whole budget document is stored under by
// key-value backends.
const DocumentKey = "budget-master-state"

// ErrNotFound is returned by Load when nothing has been stored yet.
var ErrNotFound = errors.New("no stored budget")

// Backend reads and writes the single stored document.
type Backend interface {
	// Load returns the stored document, or ErrNotFound.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored document.
	Save(ctx context.Context, data []byte) error
	// Clear removes the stored document. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
	// Location describes where the document lives, for messages.
	Location() string
}
