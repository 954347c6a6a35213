// Package store provides the key-value storage interface and its SQLite and
// in-memory implementations.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("key not found")

// Store is a string-keyed, string-valued store. Engines treat every call as
// fallible and degrade to defaults when it fails.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set creates or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Clear removes every key starting with prefix. An empty prefix clears everything.
	Clear(ctx context.Context, prefix string) error

	// Close closes the store.
	Close() error
}
