package repository

import "context"

// KeyValueStore is a string-only key-value store scoped to one client,
// the server-side stand-in for browser local storage.
// Writes are last-writer-wins; there is no read-modify-write transaction.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Storage hands out per-client views of the backing store.
type Storage interface {
	Scope(clientID string) KeyValueStore
}
