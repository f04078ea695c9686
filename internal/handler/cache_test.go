package handler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestCache(ttl time.Duration) (*Cache[int], *clock) {
	clk := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewCache[int](ttl)
	c.now = clk.Now
	return c, clk
}

func refreshing[V any](c *Cache[V], key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && e.refreshing
}

func size[V any](c *Cache[V]) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func TestCache_ServesWithinInterval(t *testing.T) {
	c, clk := newTestCache(10 * time.Second)
	var calls atomic.Int32
	load := func(context.Context) int { return int(calls.Add(1)) }

	assert.Equal(t, 1, c.Get(context.Background(), "k", load))
	clk.Advance(9 * time.Second)
	assert.Equal(t, 1, c.Get(context.Background(), "k", load))
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, refreshing(c, "k"))
}

func TestCache_StaleWhileRevalidate(t *testing.T) {
	c, clk := newTestCache(10 * time.Second)
	release := make(chan struct{})
	var calls atomic.Int32
	load := func(context.Context) int {
		n := calls.Add(1)
		if n > 1 {
			<-release
		}
		return int(n)
	}

	assert.Equal(t, 1, c.Get(context.Background(), "k", load))
	clk.Advance(10 * time.Second)

	assert.Equal(t, 1, c.Get(context.Background(), "k", load), "stale value served during refresh")
	assert.True(t, refreshing(c, "k"))
	assert.Equal(t, 1, c.Get(context.Background(), "k", load), "second stale read does not start another refresh")

	close(release)
	assert.Eventually(t, func() bool { return !refreshing(c, "k") }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, c.Get(context.Background(), "k", load))
	assert.Equal(t, int32(2), calls.Load())
}

func TestCache_SingleFlightFirstLoad(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	release := make(chan struct{})
	var calls atomic.Int32
	load := func(context.Context) int {
		calls.Add(1)
		<-release
		return 42
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Get(context.Background(), "k", load)
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, 42, r)
	}
}

func TestCache_KeysAreIndependent(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	assert.Equal(t, 1, c.Get(context.Background(), "a", func(context.Context) int { return 1 }))
	assert.Equal(t, 2, c.Get(context.Background(), "b", func(context.Context) int { return 2 }))
	assert.Equal(t, 2, size(c))
}

func TestCache_Prune(t *testing.T) {
	c, clk := newTestCache(time.Second)
	c.Get(context.Background(), "old", func(context.Context) int { return 1 })
	clk.Advance(time.Hour)
	c.Get(context.Background(), "new", func(context.Context) int { return 2 })

	removed, left := c.Prune(30 * time.Minute)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, left)
	assert.Equal(t, 1, size(c))
}

func TestCache_FirstLoadOutlivesCallerContext(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	load := func(ctx context.Context) int {
		if ctx.Err() != nil {
			return -1
		}
		return 7
	}

	assert.Equal(t, 7, c.Get(ctx, "k", load), "a cancelled request does not poison the first load")
	assert.Equal(t, 7, c.Get(context.Background(), "k", load))
}

func TestCache_RefreshPanicKeepsStaleValue(t *testing.T) {
	c, clk := newTestCache(10 * time.Second)
	var calls atomic.Int32
	load := func(context.Context) int {
		n := calls.Add(1)
		if n == 2 {
			panic("upstream exploded")
		}
		return int(n)
	}

	assert.Equal(t, 1, c.Get(context.Background(), "k", load))
	clk.Advance(10 * time.Second)
	assert.Equal(t, 1, c.Get(context.Background(), "k", load))
	assert.Eventually(t, func() bool { return !refreshing(c, "k") }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, c.Get(context.Background(), "k", load), "stale value kept after the failed refresh")
	assert.Eventually(t, func() bool { return calls.Load() == 3 && !refreshing(c, "k") }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 3, c.Get(context.Background(), "k", load))
}
