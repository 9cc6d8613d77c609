package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pricecart/pricecart/pkg/logger"
	"github.com/pricecart/pricecart/pkg/store"
	"github.com/pricecart/pricecart/pkg/telemetry"
	"github.com/pricecart/pricecart/pkg/types"
)

// Backend is the external search collaborator. Failures come back to the
// caller of Search unmodified; there is no retry here.
type Backend interface {
	Search(ctx context.Context, query string) (*types.SearchResultPayload, error)
}

// Cache serves search results from the persisted cache table and falls
// through to the backend on a miss. It also remembers the most recent
// successful result in memory for the lifetime of the instance.
type Cache struct {
	store   store.SearchStoreInterface
	backend Backend
	metrics *telemetry.Metrics

	mu   sync.Mutex
	last *types.SearchResultPayload
}

// New creates a search cache over the persisted table and backend.
// metrics may be nil.
func New(searchStore store.SearchStoreInterface, backend Backend, metrics *telemetry.Metrics) *Cache {
	return &Cache{
		store:   searchStore,
		backend: backend,
		metrics: metrics,
	}
}

// Search resolves a free-text query. Blank queries return a well-formed
// empty payload without touching storage or the network. A cache hit is
// served without a backend call or a storage write. A miss delegates to
// the backend with the original trimmed query and persists the response
// under the key the response itself carries.
func (c *Cache) Search(ctx context.Context, query string) (*types.SearchResultPayload, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.metrics.RecordSearch(ctx, telemetry.ResultShortcut)
		return types.EmptyPayload(), nil
	}

	key := Normalize(trimmed)
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"component": "search",
		"key":       key,
	})

	if payload, found, err := c.store.Get(ctx, key); err == nil && found {
		log.Debug("cache hit")
		c.metrics.RecordSearch(ctx, telemetry.ResultHit)
		c.setLast(payload)
		return payload, nil
	}

	log.Info("cache miss, querying search backend")
	start := time.Now()
	payload, err := c.backend.Search(ctx, trimmed)
	c.metrics.RecordSearchLatency(ctx, time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordSearch(ctx, telemetry.ResultError)
		return nil, err
	}

	// Store under the key the backend reports. It should match the locally
	// computed key but is trusted either way.
	if err := c.store.Set(ctx, payload); err != nil {
		log.WithError(err).Warn("failed to persist search result, serving uncached")
	}
	c.metrics.RecordSearch(ctx, telemetry.ResultMiss)
	c.setLast(payload)

	return payload, nil
}

// LastResult returns the payload of the most recent successful Search call
// since this instance was constructed. It never reads persisted storage.
func (c *Cache) LastResult() (*types.SearchResultPayload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return nil, false
	}
	return c.last, true
}

func (c *Cache) setLast(payload *types.SearchResultPayload) {
	c.mu.Lock()
	c.last = payload
	c.mu.Unlock()
}
