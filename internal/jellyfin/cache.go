package jellyfin

import (
	"sync"
	"time"
)

type cacheEntry struct {
	items   []Item
	expires time.Time
}

// viewCache keeps user views per user id; they rarely change between loads.
type viewCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func newViewCache(ttl time.Duration) *viewCache {
	return &viewCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *viewCache) get(userID string) ([]Item, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[userID]
	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.items, true
}

func (c *viewCache) set(userID string, items []Item) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[userID] = cacheEntry{
		items:   items,
		expires: time.Now().Add(c.ttl),
	}
}

func (c *viewCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
