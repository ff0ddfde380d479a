package cache

import (
	"sync"
	"time"
)

// Item represents a cached item with expiration
type Item struct {
	Value      interface{}
	Expiration int64
}

// Cache is a simple in-memory cache with per-item TTL. Provider responses
// are stored here so repeated dashboard requests for the same symbol do not
// burn through the provider's rate budget.
type Cache struct {
	items map[string]Item
	mu    sync.RWMutex
}

// New creates a new cache
func New() *Cache {
	return &Cache{
		items: make(map[string]Item),
	}
}

// Set adds an item to the cache with the given key and expiration duration
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = Item{
		Value:      value,
		Expiration: time.Now().Add(ttl).UnixNano(),
	}
}

// Get retrieves an item from the cache by key.
// The second return value indicates whether a live entry was found.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found {
		return nil, false
	}

	if time.Now().UnixNano() > item.Expiration {
		return nil, false
	}

	return item.Value, true
}

// Delete removes an item from the cache
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Cleanup removes expired items and returns the number evicted
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()
	evicted := 0
	for k, v := range c.items {
		if now > v.Expiration {
			delete(c.items, k)
			evicted++
		}
	}

	return evicted
}

// Len returns the number of entries currently held, expired or not
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
