package memory

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

// Cache is the in-memory response cache with a fixed TTL. Invalidation is
// coarse: any successful mutation clears the whole namespace.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *Cache) Get(_ context.Context, key string, now time.Time) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if now.After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	payload := make([]byte, len(entry.payload))
	copy(payload, entry.payload)
	return payload, true, nil
}

func (c *Cache) Set(_ context.Context, key string, payload []byte, now time.Time) error {
	stored := make([]byte, len(payload))
	copy(stored, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{
		payload:   stored,
		expiresAt: now.Add(c.ttl),
	}
	return nil
}

func (c *Cache) InvalidateAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	return nil
}

// NoopCache disables caching; every lookup is a miss and writes are dropped.
type NoopCache struct{}

func (NoopCache) Get(_ context.Context, _ string, _ time.Time) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopCache) Set(_ context.Context, _ string, _ []byte, _ time.Time) error { return nil }

func (NoopCache) InvalidateAll(_ context.Context) error { return nil }
