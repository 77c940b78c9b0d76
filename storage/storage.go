// Package storage persists the user document as one opaque JSON blob.
// There is no partial update: every save overwrites the whole document,
// and with a single writer last-write-wins is the whole concurrency story.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no document has been saved yet.
// Callers start from an empty document rather than failing.
var ErrNotFound = errors.New("no stored document")

// Store is the persistence collaborator: whole-document load and save.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
