// ABOUTME: Keyed request cache with dedup and bounded retry
// ABOUTME: Screens load server state through here instead of calling the API directly

package fetch

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
)

const (
	// DedupWindow is how long a successful result satisfies repeat requests
	DedupWindow = 5 * time.Second
	// MaxAttempts bounds how often a failing fetch is tried
	MaxAttempts = 3
)

// Func produces the value for a cache key
type Func func(ctx context.Context) (interface{}, error)

type entry struct {
	value     interface{}
	err       error
	fetchedAt time.Time
	inflight  chan struct{}
}

// Cache deduplicates and retries fetches per key. The last response to
// resolve for a key wins; superseded fetches are not aborted.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	dedup    time.Duration
	attempts int
	now      func() time.Time
}

// New creates a cache with the default policy
func New() *Cache {
	return &Cache{
		entries:  make(map[string]*entry),
		dedup:    DedupWindow,
		attempts: MaxAttempts,
		now:      time.Now,
	}
}

// Get returns the cached value for key when it is fresh, joins an in-flight
// fetch for the same key, or runs fn with the retry policy otherwise.
func (c *Cache) Get(ctx context.Context, key string, fn Func) (interface{}, error) {
	for {
		c.mu.Lock()
		e := c.entries[key]

		if e != nil && e.inflight != nil {
			ch := e.inflight
			c.mu.Unlock()
			select {
			case <-ch:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			c.mu.Lock()
			joined := c.entries[key]
			if joined != nil && joined.inflight == nil {
				value, err := joined.value, joined.err
				c.mu.Unlock()
				return value, err
			}
			// Entry was invalidated or replaced while we waited; start over
			c.mu.Unlock()
			continue
		}

		if e != nil && e.err == nil && c.now().Sub(e.fetchedAt) < c.dedup {
			value := e.value
			c.mu.Unlock()
			return value, nil
		}

		ch := make(chan struct{})
		c.entries[key] = &entry{inflight: ch}
		c.mu.Unlock()

		value, err := c.fetchWithRetry(ctx, fn)

		c.mu.Lock()
		c.entries[key] = &entry{value: value, err: err, fetchedAt: c.now()}
		c.mu.Unlock()
		close(ch)
		return value, err
	}
}

// fetchWithRetry runs fn up to the attempt budget. Unauthorized and
// forbidden responses are never retried: retrying an auth failure could
// mask a logout race, so they fail fast for the session store to react.
func (c *Cache) fetchWithRetry(ctx context.Context, fn Func) (interface{}, error) {
	var value interface{}
	var err error
	for attempt := 0; attempt < c.attempts; attempt++ {
		value, err = fn(ctx)
		if err == nil {
			return value, nil
		}
		if api.IsKind(err, api.KindUnauthorized) || api.IsKind(err, api.KindForbidden) {
			return value, err
		}
		if ctx.Err() != nil {
			return value, err
		}
	}
	return value, err
}

// Invalidate drops the cached result so the next Get refetches. An
// in-flight fetch is left alone; its result lands and is then stale.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.entries[key]; e != nil && e.inflight == nil {
		delete(c.entries, key)
	}
}

// InvalidatePrefix drops every completed entry whose key starts with prefix.
// Mutations use this to flush all cached pages of a resource at once.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if e.inflight == nil && strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Get is the typed wrapper around Cache.Get
func Get[T any](ctx context.Context, c *Cache, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	value, err := c.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})
	if value == nil {
		var zero T
		return zero, err
	}
	return value.(T), err
}
