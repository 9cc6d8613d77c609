package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricecart/pricecart/pkg/cache/inmemory"
	"github.com/pricecart/pricecart/pkg/store"
	"github.com/pricecart/pricecart/pkg/types"
)

func newTestSession(t *testing.T) (*Session, *store.Store) {
	t.Helper()
	c, err := inmemory.NewCache(&inmemory.Config{})
	require.NoError(t, err)
	st := store.New(c)
	return New(st), st
}

func TestSession_ActiveAfterSetUser(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	assert.False(t, s.IsActive(ctx))
	_, found := s.CurrentUser(ctx)
	assert.False(t, found)

	require.NoError(t, s.SetUser(ctx, &types.User{ID: 7, Email: "shopper@example.com"}))

	assert.True(t, s.IsActive(ctx))
	user, found := s.CurrentUser(ctx)
	require.True(t, found)
	assert.Equal(t, "shopper@example.com", user.Email)
	assert.False(t, user.LoggedInAt.IsZero(), "login time is stamped when unset")
}

func TestSession_LogoutErasesAllTables(t *testing.T) {
	s, st := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, s.SetUser(ctx, &types.User{ID: 7, Email: "shopper@example.com"}))
	require.NoError(t, st.Search.Set(ctx, &types.SearchResultPayload{
		Query:   "milk",
		Key:     "milk",
		Results: map[string][]types.ItemRow{"sainsburys": {}},
	}))
	require.NoError(t, st.Basket.Set(ctx, []types.BasketItem{
		{ID: "x", Title: "Milk", Market: "sainsburys", Quantity: 1},
	}))

	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.IsActive(ctx))

	_, found, err := st.Search.Get(ctx, "milk")
	require.NoError(t, err)
	assert.False(t, found)

	items, err := st.Basket.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSession_LogoutWhenNothingStored(t *testing.T) {
	s, _ := newTestSession(t)
	assert.NoError(t, s.Logout(context.Background()))
}
