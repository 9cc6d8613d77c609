package cache

import (
	"context"
	"errors"
	"time"
)

// NoExpiration pins an entry for the lifetime of the storage medium.
const NoExpiration time.Duration = -1

// ErrKeyNotFound is returned by Get when the key is absent. Callers in the
// store layer treat it as "use the default value", not as a failure.
var ErrKeyNotFound = errors.New("key not found in cache")

// Cache is the durable string-keyed storage medium shared by the search
// cache, basket and session stores. Reads and writes are last-writer-wins;
// there are no transactions and no cross-process coordination.
type Cache interface {
	// Get returns the stored value for key or ErrKeyNotFound.
	Get(ctx context.Context, key string) (interface{}, error)

	// Set stores value under key. NoExpiration keeps the entry until it is
	// explicitly deleted.
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// GetByPattern returns all entries whose keys match a glob pattern,
	// e.g. "search:*".
	GetByPattern(ctx context.Context, pattern string) (map[string]interface{}, error)

	// DeleteByPattern removes every entry whose key matches the pattern.
	DeleteByPattern(ctx context.Context, pattern string) error

	// Ping verifies the medium is reachable.
	Ping(ctx context.Context) error
}
