package handler

import (
	"context"
	"log"
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	value      V
	ready      chan struct{}
	updatedAt  time.Time
	refreshing bool
}

// Cache keeps one computed value per key for a revalidation interval. The
// first request for a key computes it; concurrent requests wait for that
// result. Once stale, the old value is served while a single background
// refresh replaces it.
type Cache[V any] struct {
	ttl     time.Duration
	entries map[string]*cacheEntry[V]
	mu      sync.Mutex
	now     func() time.Time
}

func NewCache[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		entries: make(map[string]*cacheEntry[V]),
		now:     time.Now,
	}
}

// Get returns the value for key, computing it with load when needed.
func (c *Cache[V]) Get(ctx context.Context, key string, load func(context.Context) V) V {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry[V]{ready: make(chan struct{})}
		c.entries[key] = e
		c.mu.Unlock()

		return c.fill(context.WithoutCancel(ctx), e, load)
	}

	select {
	case <-e.ready:
	default:
		c.mu.Unlock()
		<-e.ready
		c.mu.Lock()
	}

	if !e.refreshing && c.now().Sub(e.updatedAt) >= c.ttl {
		e.refreshing = true
		go c.refresh(context.WithoutCancel(ctx), key, e, load)
	}
	v := e.value
	c.mu.Unlock()
	return v
}

// fill computes the first value of e. Waiters are released even if load panics.
func (c *Cache[V]) fill(ctx context.Context, e *cacheEntry[V], load func(context.Context) V) (v V) {
	defer func() {
		c.mu.Lock()
		e.value = v
		e.updatedAt = c.now()
		close(e.ready)
		c.mu.Unlock()
	}()
	return load(ctx)
}

// refresh replaces the value of e in the background. A panicking load keeps
// the stale value and lets the next stale read try again.
func (c *Cache[V]) refresh(ctx context.Context, key string, e *cacheEntry[V], load func(context.Context) V) {
	defer func() {
		if r := recover(); r != nil {
			c.mu.Lock()
			e.refreshing = false
			c.mu.Unlock()
			log.Printf("[ERROR] Regenerating %s panicked: %v", key, r)
		}
	}()
	v := load(ctx)
	c.mu.Lock()
	e.value = v
	e.updatedAt = c.now()
	e.refreshing = false
	c.mu.Unlock()
	log.Printf("[PAGE] Regenerated %s", key)
}

// Prune drops settled entries not updated within threshold. It returns how
// many were removed and how many remain.
func (c *Cache[V]) Prune(threshold time.Duration) (removed, left int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		select {
		case <-e.ready:
		default:
			continue
		}
		if !e.refreshing && c.now().Sub(e.updatedAt) > threshold {
			delete(c.entries, key)
			removed++
		}
	}
	return removed, len(c.entries)
}

// Cleanup prunes the cache every period until ctx is done.
func (c *Cache[V]) Cleanup(ctx context.Context, period, threshold time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, left := c.Prune(threshold); n > 0 {
				log.Printf("[PAGE] Deleted %d elements from page cache, %d left", n, left)
			}
		}
	}
}
