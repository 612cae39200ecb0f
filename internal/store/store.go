package store

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("store is closed")

// Key addresses a record in a hierarchical namespace, e.g. {"settings", "key"}.
type Key []string

// String returns the canonical encoding of the key.
//
// The encoding is a JSON array so that parts containing separators cannot
// collide: {"a/b"} and {"a", "b"} encode differently.
func (k Key) String() string {
	b, _ := json.Marshal([]string(k))
	return string(b)
}

// Store defines atomic single-key access to persisted records.
//
// Store implementations must be safe for concurrent access.
type Store interface {
	// Get returns the value stored under key.
	// A missing key is reported as ok == false with a nil error.
	Get(ctx context.Context, key Key) (value []byte, ok bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key Key, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}
