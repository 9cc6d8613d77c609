package session

import (
	"context"
	"fmt"
	"time"

	"github.com/pricecart/pricecart/pkg/logger"
	"github.com/pricecart/pricecart/pkg/store"
	"github.com/pricecart/pricecart/pkg/types"
)

// Session tracks whether a user session is active and owns the stored user
// record. On logout it erases the user record together with the persisted
// search-cache and basket tables.
type Session struct {
	users  store.UserStoreInterface
	search store.SearchStoreInterface
	basket store.BasketStoreInterface
}

func New(st *store.Store) *Session {
	return &Session{
		users:  st.User,
		search: st.Search,
		basket: st.Basket,
	}
}

// IsActive reports whether a user record is stored.
func (s *Session) IsActive(ctx context.Context) bool {
	_, found, err := s.users.Get(ctx)
	return err == nil && found
}

// CurrentUser returns the stored user record, if any.
func (s *Session) CurrentUser(ctx context.Context) (*types.User, bool) {
	user, found, err := s.users.Get(ctx)
	if err != nil || !found {
		return nil, false
	}
	return user, true
}

// SetUser stores the user record, stamping the login time if unset.
func (s *Session) SetUser(ctx context.Context, user *types.User) error {
	if user.LoggedInAt.IsZero() {
		user.LoggedInAt = time.Now().UTC()
	}
	if err := s.users.Set(ctx, user); err != nil {
		return fmt.Errorf("failed to store user record: %w", err)
	}
	return nil
}

// Logout erases the user record, the search-cache table and the basket
// table. It keeps going past individual failures so one bad delete does
// not leave the other tables behind, and returns the first failure.
func (s *Session) Logout(ctx context.Context) error {
	log := logger.Logger(ctx).WithField("component", "session")
	log.Info("logging out, erasing persisted tables")

	var firstErr error
	if err := s.users.Delete(ctx); err != nil {
		log.WithError(err).Error("failed to delete user record")
		firstErr = err
	}
	if err := s.search.Clear(ctx); err != nil {
		log.WithError(err).Error("failed to clear search cache table")
		if firstErr == nil {
			firstErr = err
		}
	}
	if err := s.basket.Delete(ctx); err != nil {
		log.WithError(err).Error("failed to delete basket table")
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
