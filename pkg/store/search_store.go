package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pricecart/pricecart/pkg/cache"
	"github.com/pricecart/pricecart/pkg/logger"
	"github.com/pricecart/pricecart/pkg/types"
)

const searchKeyPrefix = "search:"

// SearchStore handles the persisted search-result cache table with the
// "search:" prefix, one entry per normalized query key.
// NOTE: This store does NOT handle locking - callers must ensure proper synchronization
type SearchStore struct {
	cache cache.Cache
}

// newSearchStore creates a new SearchStore instance
func newSearchStore(c cache.Cache) *SearchStore {
	return &SearchStore{
		cache: c,
	}
}

// searchKey returns the prefixed cache key for a normalized query
func (s *SearchStore) searchKey(key string) string {
	return searchKeyPrefix + key
}

// Get returns the cached payload for a normalized key. Both a missing entry
// and one that fails to decode are reported as a miss so a corrupt medium
// never blocks a search.
func (s *SearchStore) Get(ctx context.Context, key string) (*types.SearchResultPayload, bool, error) {
	val, err := s.cache.Get(ctx, s.searchKey(key))
	if err != nil {
		// Entry not found, treat as a cache miss
		return nil, false, nil
	}

	var payload types.SearchResultPayload
	if err := json.Unmarshal([]byte(val.(string)), &payload); err != nil {
		logger.Logger(ctx).WithField("key", key).WithError(err).
			Warn("corrupt search cache entry, treating as miss")
		return nil, false, nil
	}

	return &payload, true, nil
}

// Set stores payload under the key the payload carries. That key is the one
// reported by the search backend, which is trusted as-is.
func (s *SearchStore) Set(ctx context.Context, payload *types.SearchResultPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal search payload: %w", err)
	}

	if err := s.cache.Set(ctx, s.searchKey(payload.Key), string(data), cache.NoExpiration); err != nil {
		return fmt.Errorf("failed to set search payload in cache: %w", err)
	}

	return nil
}

// Clear erases every entry of the search cache table
func (s *SearchStore) Clear(ctx context.Context) error {
	if err := s.cache.DeleteByPattern(ctx, searchKeyPrefix+"*"); err != nil {
		return fmt.Errorf("failed to clear search cache table: %w", err)
	}
	return nil
}
