// Package docstore is the document store adapter for user profiles.
//
// It knows how to derive a document key from a user id, fetch the raw
// JSON document stored under it, and upsert a whole document. It carries
// no profile semantics: every merge rule lives in package profile.
//
// Backends: SQLite (default, embedded), PostgreSQL (JSONB column),
// S3-compatible object storage via MinIO, and an in-process map.
package docstore

import (
	"context"
	"errors"
	"fmt"
)

// KeyPrefix is prepended to the user id to form the document key.
const KeyPrefix = "user::"

var (
	// ErrNotFound is returned by Fetch when no document exists for the key.
	ErrNotFound = errors.New("document not found")
	// ErrUnavailable wraps every failure of the underlying store.
	ErrUnavailable = errors.New("document store unavailable")
)

// Store is the adapter contract consumed by the profile engine.
// Implementations must be safe for concurrent use.
type Store interface {
	// Fetch returns the document stored for userID, or ErrNotFound.
	Fetch(ctx context.Context, userID string) ([]byte, error)
	// Write replaces the whole document stored for userID.
	Write(ctx context.Context, userID string, doc []byte) error
}

// Handle is a Store that owns a connection and must be closed.
type Handle interface {
	Store
	Close() error
}

// Key returns the document key for a user id.
func Key(userID string) string {
	return KeyPrefix + userID
}

func unavailable(op, key string, err error) error {
	return fmt.Errorf("docstore: %s %q: %w: %w", op, key, ErrUnavailable, err)
}
