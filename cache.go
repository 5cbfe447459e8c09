package hledger

import (
	"sync"
	"time"
)

// Cache is a time-boxed memoization layer over the expensive whole-journal
// reads. It is an explicitly constructed, injectable value, not a package
// global: each process (and each test) builds its own with NewCache.
//
// Entries are immutable once computed; an invalidation drops them whole, so
// a reader racing a writer sees either the old payload or a fresh compute,
// never a torn one. Concurrent misses on the same key share a single
// compute.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	now     func() time.Time // injectable clock for tests
}

type cacheEntry struct {
	ready   chan struct{} // closed once payload and err are set
	payload any
	err     error
	created time.Time
	ttl     time.Duration
}

// expired reports whether a computed entry is past its TTL at time t.
// Only call after ready is closed.
func (e *cacheEntry) expired(t time.Time) bool {
	return t.Sub(e.created) > e.ttl
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry), now: time.Now}
}

// GetOrCompute returns the cached payload for key if one exists and is
// younger than its TTL, and otherwise runs compute and caches its result.
// Failed computes are never cached: an error is returned to the caller that
// hit it and the next call computes again.
func (c *Cache) GetOrCompute(key string, ttl time.Duration, compute func() (any, error)) (any, error) {
	for {
		c.mu.Lock()
		e, ok := c.entries[key]
		if ok {
			select {
			case <-e.ready:
				if e.err == nil && !e.expired(c.now()) {
					c.mu.Unlock()
					return e.payload, nil
				}
				// stale or failed: fall through and take over the slot
			default:
				// a compute is in flight; wait for it outside the lock
				c.mu.Unlock()
				<-e.ready
				if e.err == nil && !e.expired(c.now()) {
					return e.payload, nil
				}
				continue
			}
		}

		e = &cacheEntry{ready: make(chan struct{}), ttl: ttl}
		c.entries[key] = e
		c.mu.Unlock()

		e.payload, e.err = compute()
		e.created = c.now()
		close(e.ready)

		if e.err != nil {
			// do not serve a failure from cache
			c.mu.Lock()
			if c.entries[key] == e {
				delete(c.entries, key)
			}
			c.mu.Unlock()
		}
		return e.payload, e.err
	}
}

// Invalidate drops the entries for the given keys immediately. An in-flight
// compute for a dropped key finishes for its own waiters but a subsequent
// GetOrCompute starts fresh.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}
