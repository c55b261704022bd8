package storefront

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Tag labels cached entries for bulk invalidation.
type Tag string

const (
	TagProducts Tag = "Products"
	TagCart     Tag = "Cart"
	TagOrders   Tag = "Orders"
)

// tagCache caches read results under operation+parameter keys, labels them
// with tags, and drops everything under a tag when a mutation succeeds.
// Entries have no expiry beyond invalidation and process exit.
//
// Concurrent reads of the same key are collapsed into one upstream call via
// singleflight: late arrivals join the in-flight call and observe its
// result.
type tagCache struct {
	mu      sync.RWMutex
	entries map[string]interface{}
	tags    map[Tag]map[string]struct{}
	group   singleflight.Group
}

func newTagCache() *tagCache {
	return &tagCache{
		entries: make(map[string]interface{}),
		tags:    make(map[Tag]map[string]struct{}),
	}
}

// do returns the cached value for key, or runs fetch, stores the result
// under the given tags, and returns it. A failed fetch caches nothing.
func (c *tagCache) do(key string, tags []Tag, fetch func() (interface{}, error)) (interface{}, error) {
	c.mu.RLock()
	value, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return value, nil
	}

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Re-check under the singleflight lock: an identical call may
		// have populated the entry while we waited.
		c.mu.RLock()
		cached, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		fetched, err := fetch()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = fetched
		for _, tag := range tags {
			keys, ok := c.tags[tag]
			if !ok {
				keys = make(map[string]struct{})
				c.tags[tag] = keys
			}
			keys[key] = struct{}{}
		}
		c.mu.Unlock()

		return fetched, nil
	})
	return value, err
}

// invalidate drops every entry labeled with any of the given tags, forcing
// the next matching read to refetch.
func (c *tagCache) invalidate(tags ...Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tag := range tags {
		for key := range c.tags[tag] {
			delete(c.entries, key)
		}
		delete(c.tags, tag)
	}
}

// cached is the typed front door to the client's cache.
func cached[T any](c *Client, key string, tags []Tag, fetch func() (T, error)) (T, error) {
	value, err := c.cache.do(key, tags, func() (interface{}, error) {
		return fetch()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}
