package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pricecart/pricecart/pkg/cache"
	"github.com/pricecart/pricecart/pkg/logger"
	"github.com/pricecart/pricecart/pkg/types"
)

const userKey = "user"

// UserStore persists the session's user record under the "user" key.
// The record is owned by the session collaborator.
// NOTE: This store does NOT handle locking - callers must ensure proper synchronization
type UserStore struct {
	cache cache.Cache
}

// newUserStore creates a new UserStore instance
func newUserStore(c cache.Cache) *UserStore {
	return &UserStore{
		cache: c,
	}
}

// Get returns the stored user record. A missing or corrupt record means no
// session is active.
func (s *UserStore) Get(ctx context.Context) (*types.User, bool, error) {
	val, err := s.cache.Get(ctx, userKey)
	if err != nil {
		// No user record, no active session
		return nil, false, nil
	}

	var user types.User
	if err := json.Unmarshal([]byte(val.(string)), &user); err != nil {
		logger.Logger(ctx).WithError(err).Warn("corrupt user record, treating as absent")
		return nil, false, nil
	}

	return &user, true, nil
}

// Set replaces the stored user record
func (s *UserStore) Set(ctx context.Context, user *types.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user record: %w", err)
	}

	if err := s.cache.Set(ctx, userKey, string(data), cache.NoExpiration); err != nil {
		return fmt.Errorf("failed to set user record in cache: %w", err)
	}

	return nil
}

// Delete erases the user record
func (s *UserStore) Delete(ctx context.Context) error {
	return s.cache.Delete(ctx, userKey)
}
