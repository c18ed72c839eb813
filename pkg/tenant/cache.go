package tenant

import (
	"context"
	"sync"
	"time"
)

// Cache stores resolved tenants keyed by slug so that hot storefronts do not
// hit the directory on every request.
type Cache interface {
	Get(ctx context.Context, key string) (*Tenant, bool)
	Set(ctx context.Context, key string, t *Tenant, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Close() error
}

// DefaultCacheSize is the default maximum number of cached tenants.
const DefaultCacheSize = 1000

// inMemoryCache is a TTL cache with LRU eviction and a background sweeper.
type inMemoryCache struct {
	mu      sync.RWMutex
	items   map[string]cacheItem
	lru     []string
	maxSize int
	stop    chan struct{}
	done    chan struct{}
	closed  bool
}

type cacheItem struct {
	tenant    *Tenant
	expiresAt time.Time
}

// NewInMemoryCache creates an in-memory cache with the default size limit.
func NewInMemoryCache() Cache {
	return NewInMemoryCacheWithSize(DefaultCacheSize)
}

// NewInMemoryCacheWithSize creates an in-memory cache holding at most
// maxSize tenants.
func NewInMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}

	c := &inMemoryCache{
		items:   make(map[string]cacheItem),
		lru:     make([]string, 0, maxSize),
		maxSize: maxSize,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *inMemoryCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		delete(c.items, key)
		c.removeLRU(key)
		return nil, false
	}

	c.touchLRU(key)
	return item.tenant, true
}

func (c *inMemoryCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		if len(c.lru) > 0 {
			oldest := c.lru[0]
			delete(c.items, oldest)
			c.lru = c.lru[1:]
		}
	}

	c.items[key] = cacheItem{tenant: t, expiresAt: time.Now().Add(ttl)}
	c.touchLRU(key)
}

func (c *inMemoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	c.removeLRU(key)
}

func (c *inMemoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

func (c *inMemoryCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *inMemoryCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
			c.removeLRU(key)
		}
	}
}

// touchLRU moves key to the most-recently-used end of the queue.
func (c *inMemoryCache) touchLRU(key string) {
	for i, k := range c.lru {
		if k == key {
			c.lru = append(c.lru[:i], c.lru[i+1:]...)
			break
		}
	}
	c.lru = append(c.lru, key)
}

func (c *inMemoryCache) removeLRU(key string) {
	for i, k := range c.lru {
		if k == key {
			c.lru = append(c.lru[:i], c.lru[i+1:]...)
			return
		}
	}
}

// noOpCache never caches. Useful for tests and for disabling caching.
type noOpCache struct{}

// NewNoOpCache returns a cache that stores nothing.
func NewNoOpCache() Cache { return noOpCache{} }

func (noOpCache) Get(context.Context, string) (*Tenant, bool)         { return nil, false }
func (noOpCache) Set(context.Context, string, *Tenant, time.Duration) {}
func (noOpCache) Delete(context.Context, string)                      {}
func (noOpCache) Close() error                                        { return nil }
