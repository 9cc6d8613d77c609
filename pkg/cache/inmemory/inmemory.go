package inmemory

import (
	"context"
	"path"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pricecart/pricecart/pkg/cache"
)

// Config holds the in-memory provider settings. Durations are in seconds
// so they can be set directly from the config file.
type Config struct {
	// DefaultExpiration is applied when Set is called with a zero
	// expiration. Zero or negative means entries never expire.
	DefaultExpiration int `mapstructure:"defaultExpiration"`
	// CleanupInterval controls how often expired entries are purged.
	CleanupInterval int `mapstructure:"cleanupInterval"`
}

// InMemoryCache adapts patrickmn/go-cache to the cache.Cache interface.
// It is process-local: suitable for tests and single-session runs where
// durability across restarts is not required.
type InMemoryCache struct {
	client *gocache.Cache
}

func NewCache(cfg *Config) (*InMemoryCache, error) {
	defaultExpiration := gocache.NoExpiration
	if cfg.DefaultExpiration > 0 {
		defaultExpiration = time.Duration(cfg.DefaultExpiration) * time.Second
	}
	cleanupInterval := time.Duration(cfg.CleanupInterval) * time.Second

	return &InMemoryCache{
		client: gocache.New(defaultExpiration, cleanupInterval),
	}, nil
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, error) {
	val, found := c.client.Get(key)
	if !found {
		return nil, cache.ErrKeyNotFound
	}
	return val, nil
}

func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration == cache.NoExpiration {
		expiration = gocache.NoExpiration
	}
	c.client.Set(key, value, expiration)
	return nil
}

func (c *InMemoryCache) Delete(_ context.Context, key string) error {
	c.client.Delete(key)
	return nil
}

func (c *InMemoryCache) GetByPattern(_ context.Context, pattern string) (map[string]interface{}, error) {
	matches := make(map[string]interface{})
	for key, item := range c.client.Items() {
		ok, err := path.Match(pattern, key)
		if err != nil {
			return nil, err
		}
		if ok {
			matches[key] = item.Object
		}
	}
	return matches, nil
}

func (c *InMemoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	for key := range c.client.Items() {
		ok, err := path.Match(pattern, key)
		if err != nil {
			return err
		}
		if ok {
			c.client.Delete(key)
		}
	}
	return nil
}

func (c *InMemoryCache) Ping(_ context.Context) error {
	return nil
}

// Compile-time interface compliance check
var _ cache.Cache = (*InMemoryCache)(nil)
