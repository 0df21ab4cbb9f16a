// Package cache provides a small LRU cache for values that are expensive
// to produce and cheap to keep, such as rasterized text.
package cache

import "sync"

// LRU is a fixed-capacity cache that evicts the least recently used entry.
// It is safe for concurrent use.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[K]*node[K, V]
	order    list[K, V]

	hits   uint64
	misses uint64
}

// New returns an LRU holding at most capacity entries. A capacity below 1
// is treated as 1.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	return &LRU[K, V]{
		capacity: max(capacity, 1),
		entries:  make(map[K]*node[K, V]),
	}
}

// Get returns the value for key and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.moveToFront(n)
	return n.value, true
}

// GetOrCreate returns the cached value for key, calling create on a miss.
// create runs under the cache lock and must not use the cache.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		c.hits++
		c.order.moveToFront(n)
		return n.value
	}
	c.misses++
	v := create()
	c.add(key, v)
	return v
}

// Set stores value under key.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		n.value = value
		c.order.moveToFront(n)
		return
	}
	c.add(key, value)
}

func (c *LRU[K, V]) add(key K, value V) {
	for c.order.len >= c.capacity {
		oldest := c.order.back()
		c.order.remove(oldest)
		delete(c.entries, oldest.key)
	}
	n := &node[K, V]{key: key, value: value}
	c.order.pushFront(n)
	c.entries[key] = n
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Purge removes every entry.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*node[K, V])
	c.order = list[K, V]{}
}

// Stats returns the hit and miss counts.
func (c *LRU[K, V]) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
