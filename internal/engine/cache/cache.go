// Package cache provides a bounded least-recently-used cache for values that
// are expensive to build, such as render geometry.
package cache

import (
	"container/list"

	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/zerr"
)

// Stats counts cache traffic since creation or the last Clear.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// EvictionCache maps keys to values and holds at most Cap entries. When full,
// inserting a new key evicts the least recently used one.
//
// An EvictionCache is not safe for concurrent use.
type EvictionCache[K comparable, V any] struct {
	capacity int
	items    map[K]*list.Element
	lru      *list.List // front is most recent
	stats    Stats
}

// New returns a cache holding at most capacity entries. Capacities below 1
// are raised to 1.
func New[K comparable, V any](capacity int) *EvictionCache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &EvictionCache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		lru:      list.New(),
	}
}

// Put inserts or replaces the value for key and marks it most recent.
func (c *EvictionCache[K, V]) Put(key K, value V) {
	if elem, ok := c.items[key]; ok {
		elem.Value.(*entry[K, V]).value = value
		c.lru.MoveToFront(elem)
		return
	}

	if c.lru.Len() >= c.capacity {
		c.evictOldest()
	}

	c.items[key] = c.lru.PushFront(&entry[K, V]{key: key, value: value})
}

// Get returns the value for key and marks it most recent. A miss returns the
// zero value and false.
func (c *EvictionCache[K, V]) Get(key K) (V, bool) {
	elem, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	c.lru.MoveToFront(elem)
	return elem.Value.(*entry[K, V]).value, true
}

// Contains reports whether key is cached. A hit marks the key most recent.
func (c *EvictionCache[K, V]) Contains(key K) bool {
	elem, ok := c.items[key]
	if ok {
		c.lru.MoveToFront(elem)
	}
	return ok
}

// Remove deletes key from the cache.
func (c *EvictionCache[K, V]) Remove(key K) error {
	elem, ok := c.items[key]
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrKeyNotFound, "cannot remove key"), "key", key)
	}
	c.removeElement(elem)
	return nil
}

// Len returns the number of cached entries.
func (c *EvictionCache[K, V]) Len() int {
	return c.lru.Len()
}

// Cap returns the maximum number of entries.
func (c *EvictionCache[K, V]) Cap() int {
	return c.capacity
}

// Keys returns the cached keys, most recent first.
func (c *EvictionCache[K, V]) Keys() []K {
	keys := make([]K, 0, c.lru.Len())
	for e := c.lru.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.(*entry[K, V]).key)
	}
	return keys
}

// Clear drops every entry and resets the statistics.
func (c *EvictionCache[K, V]) Clear() {
	clear(c.items)
	c.lru.Init()
	c.stats = Stats{}
}

// Stats returns a snapshot of the hit, miss and eviction counters.
func (c *EvictionCache[K, V]) Stats() Stats {
	return c.stats
}
