package models

import "sync"

// ContentEntry is one persisted content-classification result.
type ContentEntry struct {
	Key      string `json:"key"`
	Category string `json:"category"`
}

// ContentCache is the bounded store of content-classification results,
// keyed "yt:<videoId>" or "url:<url>". When the capacity is exceeded the
// oldest-inserted entry is evicted; the bound matters, the exact eviction
// choice does not.
type ContentCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]string
	order    []string
}

const DefaultContentCacheCapacity = 500

func NewContentCache(capacity int) *ContentCache {
	if capacity <= 0 {
		capacity = DefaultContentCacheCapacity
	}
	return &ContentCache{
		capacity: capacity,
		entries:  make(map[string]string),
	}
}

func (c *ContentCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cat, ok := c.entries[key]
	return cat, ok
}

func (c *ContentCache) Put(key, category string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = category

	for len(c.entries) > c.capacity && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

func (c *ContentCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Snapshot returns the entries in insertion order for persistence.
func (c *ContentCache) Snapshot() []ContentEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]ContentEntry, 0, len(c.entries))
	for _, key := range c.order {
		if cat, ok := c.entries[key]; ok {
			out = append(out, ContentEntry{Key: key, Category: cat})
		}
	}
	return out
}

// Restore replaces the cache contents with persisted entries, re-applying
// the capacity bound.
func (c *ContentCache) Restore(entries []ContentEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]string, len(entries))
	c.order = c.order[:0]
	for _, e := range entries {
		if _, exists := c.entries[e.Key]; !exists {
			c.order = append(c.order, e.Key)
		}
		c.entries[e.Key] = e.Category
	}
	for len(c.entries) > c.capacity && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}
