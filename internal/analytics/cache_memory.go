package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/ignite/touchpoint-analytics/internal/domain"
)

// DefaultMaxEntries bounds a MemoryCache when no limit is given.
const DefaultMaxEntries = 1024

type memoryEntry struct {
	value   domain.CampaignAnalytics
	expires time.Time
}

// MemoryCache is an in-process TTL cache. A zero TTL keeps entries until
// they're evicted for space.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemoryCache creates a cache holding up to maxEntries results.
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns a copy of the cached value for key.
func (c *MemoryCache) Get(_ context.Context, key string) (domain.CampaignAnalytics, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return domain.CampaignAnalytics{}, false, nil
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.entries, key)
		return domain.CampaignAnalytics{}, false, nil
	}
	return clone(e.value), true, nil
}

// Set stores a copy of v, evicting the entry closest to expiry when full.
func (c *MemoryCache) Set(_ context.Context, key string, v domain.CampaignAnalytics) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	var expires time.Time
	if c.ttl > 0 {
		expires = c.now().Add(c.ttl)
	}
	c.entries[key] = memoryEntry{value: clone(v), expires: expires}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) evictLocked() {
	var victim string
	var victimExp time.Time
	first := true
	for k, e := range c.entries {
		if first || e.expires.Before(victimExp) || (e.expires.Equal(victimExp) && k < victim) {
			victim, victimExp, first = k, e.expires, false
		}
	}
	delete(c.entries, victim)
}
