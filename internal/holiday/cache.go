package holiday

import (
	"context"
	"log"
	"strconv"
	"sync"
)

// DefaultMaxYears bounds the cache: entries for at most this many
// distinct (year, region) keys are retained, oldest first out.
const DefaultMaxYears = 4

// Cache wraps a Client with bounded per-(year, region) memoization. It
// is an explicit object handed to its consumers rather than a package
// global, so its lifetime and eviction are visible at the wiring site.
type Cache struct {
	client *Client

	mu      sync.Mutex
	entries map[string]map[string]string
	order   []string
	maxKeys int
}

// NewCache creates a cache over the given client keeping at most
// maxKeys (year, region) entries; maxKeys <= 0 selects DefaultMaxYears.
func NewCache(client *Client, maxKeys int) *Cache {
	if maxKeys <= 0 {
		maxKeys = DefaultMaxYears
	}
	return &Cache{
		client:  client,
		entries: make(map[string]map[string]string),
		maxKeys: maxKeys,
	}
}

// Load returns the holiday map for (year, region), fetching it on first
// use. A feed failure is logged and degrades to an empty map; the
// failure is not cached, so a later render retries the feed.
func (c *Cache) Load(ctx context.Context, year int, region string) map[string]string {
	key := cacheKey(year, region)

	c.mu.Lock()
	if cached, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	holidays, err := c.client.Load(ctx, year, region)
	if err != nil {
		log.Printf("Holiday feed unavailable for %d/%s: %v", year, region, err)
		return map[string]string{}
	}

	c.store(key, holidays)
	return holidays
}

// Refresh fetches (year, region) unconditionally, replacing any cached
// entry. Used by the background prefetch job.
func (c *Cache) Refresh(ctx context.Context, year int, region string) error {
	holidays, err := c.client.Load(ctx, year, region)
	if err != nil {
		return err
	}
	c.store(cacheKey(year, region), holidays)
	return nil
}

func (c *Cache) store(key string, holidays map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = holidays

	for len(c.order) > c.maxKeys {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Len returns the number of cached (year, region) entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cacheKey(year int, region string) string {
	return region + "/" + strconv.Itoa(year)
}
