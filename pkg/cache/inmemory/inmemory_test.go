package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricecart/pricecart/pkg/cache"
)

func newTestCache(t *testing.T) *InMemoryCache {
	t.Helper()
	c, err := NewCache(&Config{
		DefaultExpiration: 0,
		CleanupInterval:   0,
	})
	require.NoError(t, err)
	return c
}

func TestInMemoryCache_SetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "search:milk", "payload", cache.NoExpiration))

	val, err := c.Get(ctx, "search:milk")
	require.NoError(t, err)
	assert.Equal(t, "payload", val)
}

func TestInMemoryCache_GetMissing(t *testing.T) {
	c := newTestCache(t)

	_, err := c.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
}

func TestInMemoryCache_Patterns(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "search:milk", "a", cache.NoExpiration))
	require.NoError(t, c.Set(ctx, "search:semi skimmed milk", "b", cache.NoExpiration))
	require.NoError(t, c.Set(ctx, "user", "c", cache.NoExpiration))

	matches, err := c.GetByPattern(ctx, "search:*")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.Equal(t, "a", matches["search:milk"])

	require.NoError(t, c.DeleteByPattern(ctx, "search:*"))

	matches, err = c.GetByPattern(ctx, "search:*")
	require.NoError(t, err)
	assert.Empty(t, matches)

	_, err = c.Get(ctx, "user")
	assert.NoError(t, err)
}
