package store

import (
	"github.com/pricecart/pricecart/pkg/cache"
)

// Store provides a high-level interface for the three persisted tables of a
// session: the search-result cache, the basket and the user record.
// It encapsulates key prefixing and JSON serialization.
// NOTE: This store does NOT handle locking - callers are responsible for proper synchronization
type Store struct {
	Search SearchStoreInterface
	Basket BasketStoreInterface
	User   UserStoreInterface
}

// New creates a new Store instance with all sub-stores initialized
func New(cache cache.Cache) *Store {
	return &Store{
		Search: newSearchStore(cache),
		Basket: newBasketStore(cache),
		User:   newUserStore(cache),
	}
}

// Compile-time interface compliance checks
var (
	_ SearchStoreInterface = (*SearchStore)(nil)
	_ BasketStoreInterface = (*BasketStore)(nil)
	_ UserStoreInterface   = (*UserStore)(nil)
)
