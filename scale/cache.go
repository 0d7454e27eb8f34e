package scale

import "strings"

// resultCache memoizes scale results by request key. It has no TTL, no LRU,
// and no size cap: growth is bounded only by the number of distinct
// (value, breakpoint, options) tuples the caller produces. Synchronization
// is handled at the Engine level, so the cache itself carries no lock.
type resultCache struct {
	entries map[string]ScaledValue
}

func newResultCache() *resultCache {
	return &resultCache{entries: make(map[string]ScaledValue)}
}

func (c *resultCache) get(key string) (ScaledValue, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *resultCache) set(key string, v ScaledValue) {
	c.entries[key] = v
}

func (c *resultCache) len() int {
	return len(c.entries)
}

// clear drops every entry.
func (c *resultCache) clear() {
	c.entries = make(map[string]ScaledValue)
}

// invalidate removes the entries whose key contains pattern. An empty
// pattern behaves like clear.
func (c *resultCache) invalidate(pattern string) {
	if pattern == "" {
		c.clear()
		return
	}
	for key := range c.entries {
		if strings.Contains(key, pattern) {
			delete(c.entries, key)
		}
	}
}
