// Package memory provides an in-process Cache used when no Redis is
// configured. Single-node only; deployments that scale out share a Redis.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Cache = (*Cache)(nil)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache is a mutex-guarded map with TTL expiry, checked lazily on read.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewCache creates an empty in-memory cache
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value, or (nil, false, nil) on miss or expiry
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores value under key with the given TTL
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// HealthCheck always succeeds for the in-process cache
func (c *Cache) HealthCheck(_ context.Context) error {
	return nil
}
