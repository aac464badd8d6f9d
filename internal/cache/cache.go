package cache

import (
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// item wraps cached data with its expiry.
type item struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache is a process-wide fragment cache with per-entry TTL on top of an LRU.
// It is constructed in main and handed to the handlers that use it.
type Cache struct {
	lruCache *lru.Cache[string, item]
}

func New(size int) *Cache {
	l, err := lru.New[string, item](size)
	if err != nil {
		log.Fatalf("Failed to create LRU cache: %v", err)
	}
	return &Cache{lruCache: l}
}

// Set stores data under key for the given TTL.
func (c *Cache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, item{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get returns the cached data, or nil if absent or expired.
func (c *Cache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}
	return val.Data
}

// Delete drops a single entry.
func (c *Cache) Delete(key string) {
	c.lruCache.Remove(key)
}
