package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pricecart/pricecart/pkg/cache"
	"github.com/pricecart/pricecart/pkg/cache/inmemory"
	"github.com/pricecart/pricecart/pkg/types"
)

// newTestStore returns a Store over a fresh in-memory cache along with the
// cache itself so tests can seed raw (including malformed) values.
func newTestStore(t *testing.T) (*Store, cache.Cache) {
	t.Helper()
	c, err := inmemory.NewCache(&inmemory.Config{
		DefaultExpiration: 0,
		CleanupInterval:   0,
	})
	require.NoError(t, err)
	return New(c), c
}

// payloadFixture builds a minimal well-formed payload stored under key.
func payloadFixture(query, key string) *types.SearchResultPayload {
	return &types.SearchResultPayload{
		Query: query,
		Key:   key,
		Results: map[string][]types.ItemRow{
			"sainsburys":   {{Name: "Whole Milk 2L", Price: "£1.45"}},
			"homebargains": {},
			"morrisons":    {{Name: "Milk 1 Pint", Price: "89p"}},
		},
	}
}

// basketFixture builds an ordered two-line basket.
func basketFixture() []types.BasketItem {
	return []types.BasketItem{
		{ID: "sainsburys:Whole Milk 2L:1:aa", Title: "Whole Milk 2L", UnitPrice: 1.45, Market: "sainsburys", Quantity: 2},
		{ID: "morrisons:Milk 1 Pint:2:bb", Title: "Milk 1 Pint", UnitPrice: 0.89, Market: "morrisons", Quantity: 1},
	}
}

// seedRaw writes a raw string value directly into the cache, bypassing the
// store's serialization. Used to simulate corrupt storage.
func seedRaw(t *testing.T, c cache.Cache, key, value string) {
	t.Helper()
	require.NoError(t, c.Set(context.Background(), key, value, cache.NoExpiration))
}
