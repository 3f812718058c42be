package menu

import (
	"sync"
	"time"

	"github.com/gauchoeats/gaucho/internal/models"
)

type cacheEntry struct {
	items     []models.MenuItem
	expiresAt time.Time
}

// cache keeps menus per hall for a short TTL
type cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

func newCache(ttl time.Duration, now func() time.Time) *cache {
	return &cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *cache) get(hall string) ([]models.MenuItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[hall]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, hall)
		return nil, false
	}
	return entry.items, true
}

func (c *cache) put(hall string, items []models.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[hall] = cacheEntry{
		items:     items,
		expiresAt: c.now().Add(c.ttl),
	}
}
