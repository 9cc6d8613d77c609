package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pricecart/pricecart/pkg/cache"
	"github.com/pricecart/pricecart/pkg/logger"
	"github.com/pricecart/pricecart/pkg/types"
)

const basketKey = "basket"

// BasketStore persists the basket as one JSON sequence under the "basket"
// key, rewritten whole on every mutation.
// NOTE: This store does NOT handle locking - callers must ensure proper synchronization
type BasketStore struct {
	cache cache.Cache
}

// newBasketStore creates a new BasketStore instance
func newBasketStore(c cache.Cache) *BasketStore {
	return &BasketStore{
		cache: c,
	}
}

// Get returns the persisted basket sequence. Absent or unreadable storage
// yields an empty sequence so a fresh store always starts cleanly.
func (s *BasketStore) Get(ctx context.Context) ([]types.BasketItem, error) {
	val, err := s.cache.Get(ctx, basketKey)
	if err != nil {
		// Basket not found, start empty
		return []types.BasketItem{}, nil
	}

	var items []types.BasketItem
	if err := json.Unmarshal([]byte(val.(string)), &items); err != nil {
		logger.Logger(ctx).WithError(err).Warn("corrupt basket table, starting empty")
		return []types.BasketItem{}, nil
	}

	// Ensure we always return an empty slice instead of nil
	if items == nil {
		return []types.BasketItem{}, nil
	}

	return items, nil
}

// Set replaces the persisted sequence with items
func (s *BasketStore) Set(ctx context.Context, items []types.BasketItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal basket items: %w", err)
	}

	if err := s.cache.Set(ctx, basketKey, string(data), cache.NoExpiration); err != nil {
		return fmt.Errorf("failed to set basket in cache: %w", err)
	}

	return nil
}

// Delete erases the basket table
func (s *BasketStore) Delete(ctx context.Context) error {
	return s.cache.Delete(ctx, basketKey)
}
