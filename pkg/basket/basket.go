package basket

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pricecart/pricecart/pkg/logger"
	"github.com/pricecart/pricecart/pkg/store"
	"github.com/pricecart/pricecart/pkg/telemetry"
	"github.com/pricecart/pricecart/pkg/types"
)

// NewItem carries the caller-supplied fields of a basket line. The caller
// is expected to have run the free-text price through money.ParsePrice.
type NewItem struct {
	Title     string
	UnitPrice float64
	Market    string
}

// Observer receives the complete basket sequence after every mutation.
// Observers are invoked synchronously, in subscription order, while the
// mutation lock is held: the published slice is a private copy and safe
// to retain.
type Observer func(items []types.BasketItem)

type subscriber struct {
	id int
	fn Observer
}

// Store is the reactive basket container. Every mutation publishes the
// full updated sequence to all observers and persists it whole; each
// public operation is atomic with respect to observers.
type Store struct {
	persistence store.BasketStoreInterface
	metrics     *telemetry.Metrics

	mu          sync.Mutex
	items       []types.BasketItem
	subscribers []subscriber
	nextSubID   int
}

// New loads the previously persisted sequence. Absent, unreadable or
// malformed storage silently yields an empty basket. metrics may be nil.
func New(ctx context.Context, persistence store.BasketStoreInterface, metrics *telemetry.Metrics) *Store {
	items, err := persistence.Get(ctx)
	if err != nil || items == nil {
		items = []types.BasketItem{}
	}
	return &Store{
		persistence: persistence,
		metrics:     metrics,
		items:       items,
	}
}

// Items returns a copy of the current sequence.
func (s *Store) Items() []types.BasketItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe registers an observer. It is immediately called with the
// current sequence, then with every subsequent change in the exact order
// mutations are applied. The returned function unsubscribes.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	fn(s.snapshot())
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Add appends a new line with a fresh ID. Repeated adds of the same
// product yield independent lines; lines are never merged. A quantity
// below 1 is stored as 1.
func (s *Store) Add(ctx context.Context, item NewItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	line := types.BasketItem{
		ID:        newLineID(item.Market, item.Title),
		Title:     item.Title,
		UnitPrice: item.UnitPrice,
		Market:    item.Market,
		Quantity:  quantity,
	}
	s.items = append(s.items, line)
	s.publishAndPersist(ctx, "add")
}

// UpdateQuantity sets the quantity of the line with the given ID, clamped
// to a minimum of 1. An unknown ID is a no-op, not an error.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.publishAndPersist(ctx, "update")
			return
		}
	}
}

// Remove deletes the line with the given ID. An unknown ID is a no-op.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.publishAndPersist(ctx, "remove")
			return
		}
	}
}

// Clear empties the basket unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []types.BasketItem{}
	s.publishAndPersist(ctx, "clear")
}

// publishAndPersist notifies observers with the post-mutation sequence,
// then writes it to storage. Persistence failures are logged, never
// surfaced: the in-memory state and the published stream stay
// authoritative for the session. Caller must hold s.mu.
func (s *Store) publishAndPersist(ctx context.Context, operation string) {
	snap := s.snapshot()
	for _, sub := range s.subscribers {
		sub.fn(snap)
	}

	if err := s.persistence.Set(ctx, s.items); err != nil {
		logger.Logger(ctx).WithField("operation", operation).WithError(err).
			Warn("failed to persist basket")
	}
	s.metrics.RecordBasketMutation(ctx, operation)
}

func (s *Store) snapshot() []types.BasketItem {
	snap := make([]types.BasketItem, len(s.items))
	copy(snap, s.items)
	return snap
}

// newLineID builds an ID unique among all IDs issued this session.
// Uniqueness, not reproducibility, is the contract.
func newLineID(market, title string) string {
	return fmt.Sprintf("%s:%s:%d:%s", market, title, time.Now().UnixNano(), uuid.NewString()[:8])
}
