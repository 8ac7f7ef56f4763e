package cache

import (
	"sync"
	"time"
)

// MemoryCache is a process-local CollectionCache for tests and development.
type MemoryCache struct {
	mu        sync.RWMutex
	payloads  map[string][]byte
	lastFetch map[string]time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		payloads:  make(map[string][]byte),
		lastFetch: make(map[string]time.Time),
	}
}

func (c *MemoryCache) Get(collection string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	payload, ok := c.payloads[collection]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), payload...), true
}

func (c *MemoryCache) Set(collection string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads[collection] = append([]byte(nil), payload...)
	c.lastFetch[collection] = time.Now()
	return nil
}

func (c *MemoryCache) Clear(collection string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.payloads, collection)
	delete(c.lastFetch, collection)
	return nil
}

func (c *MemoryCache) LastFetch(collection string) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.lastFetch[collection]
	return t, ok
}

func (c *MemoryCache) Close() error { return nil }
