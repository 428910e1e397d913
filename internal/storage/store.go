// Package storage defines the key-value persistence contract and its backends.
//
// The store is the on-device mirror of the application's in-memory state.
// Writes are best-effort: callers log a failed Set and keep going, and a
// failed Get is treated as "key absent". See the service layer for that policy.
package storage

import "context"

// Store is a string-keyed, string-valued persistent map.
type Store interface {
	// Get returns the value for key. The second result is false when the key
	// is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// RemoveMany deletes all given keys.
	RemoveMany(ctx context.Context, keys []string) error
	// Keys returns every key currently stored.
	Keys(ctx context.Context) ([]string, error)
	// Close releases backend resources.
	Close() error
}
