package services

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	DefaultCacheExpiration = 5 * time.Minute
	CacheCleanupInterval   = 10 * time.Minute
)

// ResultCache is the query result cache shared by the query and write
// services. Every Invalidate bumps a generation counter; a value loaded under
// an older generation is never stored, so a read racing a write cannot put
// pre-write data back after the flush. A nil *ResultCache caches nothing.
type ResultCache struct {
	items      *cache.Cache
	generation atomic.Uint64
	// mu orders stores against flushes.
	mu sync.Mutex
}

func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultCacheExpiration
	}
	return &ResultCache{items: cache.New(ttl, CacheCleanupInterval)}
}

func (c *ResultCache) get(key string) (interface{}, bool) {
	if c == nil {
		return nil, false
	}
	return c.items.Get(key)
}

func (c *ResultCache) currentGeneration() uint64 {
	if c == nil {
		return 0
	}
	return c.generation.Load()
}

// storeIfCurrent keeps v only if no invalidation happened since gen was read.
func (c *ResultCache) storeIfCurrent(key string, v interface{}, gen uint64) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation.Load() != gen {
		return false
	}
	c.items.Set(key, v, cache.DefaultExpiration)
	return true
}

// Invalidate drops every cached result.
func (c *ResultCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation.Add(1)
	c.items.Flush()
}
