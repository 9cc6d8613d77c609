package store

import (
	"context"

	"github.com/pricecart/pricecart/pkg/types"
)

// SearchStoreInterface defines operations on the persisted search-result
// cache table. Entries are never pruned: the table grows by at most one
// entry per distinct normalized query and lives until Clear.
type SearchStoreInterface interface {
	// Get returns the cached payload for a normalized key. A missing or
	// corrupt entry is reported as a miss, never as an error.
	Get(ctx context.Context, key string) (*types.SearchResultPayload, bool, error)

	// Set stores payload under the key the payload itself carries.
	Set(ctx context.Context, payload *types.SearchResultPayload) error

	// Clear erases the whole cache table.
	Clear(ctx context.Context) error
}

// BasketStoreInterface persists the basket as a whole ordered sequence.
type BasketStoreInterface interface {
	// Get returns the persisted sequence. Absent or malformed storage
	// yields an empty sequence, never an error.
	Get(ctx context.Context) ([]types.BasketItem, error)

	// Set replaces the persisted sequence with items.
	Set(ctx context.Context, items []types.BasketItem) error

	// Delete erases the basket table.
	Delete(ctx context.Context) error
}

// UserStoreInterface persists the session's user record.
type UserStoreInterface interface {
	// Get returns the stored user record, if any. Missing or corrupt
	// records are reported as absent.
	Get(ctx context.Context) (*types.User, bool, error)

	// Set replaces the stored user record.
	Set(ctx context.Context, user *types.User) error

	// Delete erases the user record.
	Delete(ctx context.Context) error
}
