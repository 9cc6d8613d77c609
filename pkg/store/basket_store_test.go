package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasketStore_Get(t *testing.T) {
	tests := []struct {
		name string
		seed func(t *testing.T, st *Store, raw func(key, value string))
		want int
	}{
		{
			name: "absent storage yields empty sequence",
			seed: func(t *testing.T, st *Store, raw func(key, value string)) {},
			want: 0,
		},
		{
			name: "malformed storage yields empty sequence",
			seed: func(t *testing.T, st *Store, raw func(key, value string)) {
				raw("basket", "][ nonsense")
			},
			want: 0,
		},
		{
			name: "json null yields empty sequence",
			seed: func(t *testing.T, st *Store, raw func(key, value string)) {
				raw("basket", "null")
			},
			want: 0,
		},
		{
			name: "persisted sequence comes back",
			seed: func(t *testing.T, st *Store, raw func(key, value string)) {
				require.NoError(t, st.Basket.Set(context.Background(), basketFixture()))
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, c := newTestStore(t)
			tt.seed(t, st, func(key, value string) { seedRaw(t, c, key, value) })

			items, err := st.Basket.Get(context.Background())

			assert.NoError(t, err)
			assert.NotNil(t, items)
			assert.Len(t, items, tt.want)
		})
	}
}

func TestBasketStore_RoundTripPreservesOrderAndIDs(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	items := basketFixture()
	require.NoError(t, st.Basket.Set(ctx, items))

	got, err := st.Basket.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestBasketStore_Delete(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Basket.Set(ctx, basketFixture()))
	require.NoError(t, st.Basket.Delete(ctx))

	items, err := st.Basket.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
