// Package storage is the persisted-state boundary: an opaque key/value store
// that survives restarts. Only the session and notification caches are
// persisted; reports and admin state are always refetched fresh.
package storage

import "context"

// Repository stores opaque byte values by key. Get returns nil (not an error)
// for a missing key; Delete and Clear are idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	List(ctx context.Context) (map[string][]byte, error)
}
