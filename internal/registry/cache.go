package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	cacheMaxEntries = 128
	cacheTTL        = 1 * time.Hour
)

type cacheEntry struct {
	names     []string
	createdAt time.Time
}

// ListingCache holds component listings in memory for a bounded time.
type ListingCache struct {
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
	hits       int64
	misses     int64
}

// NewListingCache returns a cache holding at most maxEntries listings for ttl.
func NewListingCache(maxEntries int, ttl time.Duration) *ListingCache {
	return &ListingCache{
		entries:    make(map[string]*cacheEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

var sharedCache = NewListingCache(cacheMaxEntries, cacheTTL)

// cacheKey identifies a directory at a ref of a repository.
func cacheKey(s Source, dir string) string {
	return strings.Join([]string{s.Owner, s.Repo, s.Ref, dir}, ":")
}

// get returns a copy of a fresh listing, or false.
func (c *ListingCache) get(key string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if c.now().Sub(entry.createdAt) > c.ttl {
		delete(c.entries, key)
		c.misses++
		return nil, false
	}
	c.hits++
	return slices.Clone(entry.names), true
}

// put stores a listing, evicting the oldest entry at capacity.
func (c *ListingCache) put(key string, names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		var oldestKey string
		var oldestTime time.Time
		for k, v := range c.entries {
			if oldestKey == "" || v.createdAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = v.createdAt
			}
		}
		delete(c.entries, oldestKey)
	}

	c.entries[key] = &cacheEntry{
		names:     slices.Clone(names),
		createdAt: c.now(),
	}
}

// Stats returns hit/miss counts (for diagnostics).
func (c *ListingCache) Stats() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.hits + c.misses
	if total == 0 {
		return "cache: 0 lookups"
	}
	hitRate := float64(c.hits) / float64(total) * 100
	return fmt.Sprintf("cache: %d entries, %d hits, %d misses (%.0f%% hit rate)",
		len(c.entries), c.hits, c.misses, hitRate)
}

// CacheStats reports on the listing cache shared by default clients.
func CacheStats() string {
	return sharedCache.Stats()
}
