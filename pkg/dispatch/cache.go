package dispatch

import "sync"

// outcome is a memoized resolution result. Failures are cached too: repeated
// failing calls cost a map lookup, not a re-resolution.
type outcome struct {
	method *Method
	err    error
}

// resolutionCache memoizes resolver outcomes keyed by the canonical
// argument-type tuple key. Entry writes are whole-value map assignments under
// the write lock, so a reader sees either no entry or a fully formed one.
// There is no eviction: the key space is bounded by the distinct argument
// tuples actually observed, and invalidateAll drops everything whenever the
// owning method table changes.
type resolutionCache struct {
	mu      sync.RWMutex
	entries map[string]outcome
}

func newResolutionCache() resolutionCache {
	return resolutionCache{entries: make(map[string]outcome)}
}

func (c *resolutionCache) lookup(key string) (outcome, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out, ok := c.entries[key]
	return out, ok
}

func (c *resolutionCache) store(key string, out outcome) {
	c.mu.Lock()
	c.entries[key] = out
	c.mu.Unlock()
}

func (c *resolutionCache) invalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]outcome)
	c.mu.Unlock()
}
