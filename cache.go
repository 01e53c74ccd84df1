package lrucache

import (
	"fmt"
	"iter"
)

// maxPrealloc bounds the up-front allocation made by [New], so a large
// capacity does not cost memory until the cache actually fills up.
const maxPrealloc = 1024

// Cache is a fixed-capacity in-memory cache with LRU eviction.
//
// Cache is not safe for concurrent use. Callers sharing a Cache between
// goroutines must serialize access themselves, e.g. with a [sync.Mutex]
// around each call.
//
// Values are returned as stored. If V is a pointer, slice or map, the caller
// must not mutate it through the value returned by [Cache.Get].
type Cache[K comparable, V any] struct {
	capacity int
	index    map[K]int
	order    recency[K, V]
}

// New returns a new cache holding at most capacity entries.
//
// A zero capacity is valid and yields a cache that never retains anything:
// [Cache.Put] is a no-op and [Cache.Get] always misses. New panics if
// capacity is negative.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity < 0 {
		panic(fmt.Errorf("capacity must not be negative; got %d", capacity))
	}

	hint := min(capacity, maxPrealloc)

	return &Cache[K, V]{
		capacity: capacity,
		index:    make(map[K]int, hint),
		order:    newRecency[K, V](hint),
	}
}

// Get returns the value for the given key and marks it as the most recently
// used entry.
//
// Returns the zero value and false if the key is not found. A miss does not
// change the cache.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	i, ok := c.index[k]
	if !ok {
		var zero V

		return zero, false
	}
	c.order.moveToFront(i)

	return c.order.nodes[i].value, true
}

// Put stores (k, v) in the cache as the most recently used entry.
//
// If k is already present its value is replaced and nothing is evicted.
// Otherwise, when the cache is full, the least recently used entry is
// evicted to make room.
func (c *Cache[K, V]) Put(k K, v V) {
	if c.capacity == 0 {
		return
	}

	if i, ok := c.index[k]; ok {
		c.order.nodes[i].value = v
		c.order.moveToFront(i)

		return
	}

	if len(c.index) >= c.capacity {
		i, evicted := c.order.replaceTail(k, v)
		delete(c.index, evicted)
		c.index[k] = i

		return
	}

	c.index[k] = c.order.pushFront(k, v)
}

// Peek returns the value for the given key without updating its recency.
func (c *Cache[K, V]) Peek(k K) (V, bool) {
	i, ok := c.index[k]
	if !ok {
		var zero V

		return zero, false
	}

	return c.order.nodes[i].value, true
}

// Has returns true if entry for the given key exists in the cache.
//
// Unlike [Cache.Get], Has does not mark the entry as recently used.
func (c *Cache[K, V]) Has(k K) bool {
	_, ok := c.index[k]

	return ok
}

// Delete removes the entry for the given key.
//
// Returns true if the key was present.
func (c *Cache[K, V]) Delete(k K) bool {
	i, ok := c.index[k]
	if !ok {
		return false
	}
	delete(c.index, k)
	c.order.remove(i)

	return true
}

// Oldest returns the least recently used entry, which is the one the next
// overflowing [Cache.Put] would evict. It does not update recency.
func (c *Cache[K, V]) Oldest() (k K, v V, ok bool) {
	if c.order.tail == nilIndex {
		return k, v, false
	}
	n := &c.order.nodes[c.order.tail]

	return n.key, n.value, true
}

// Clear removes all the items from the cache.
func (c *Cache[K, V]) Clear() {
	clear(c.index)
	c.order.reset()
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	return len(c.index)
}

// Cap returns the maximum number of entries the cache holds.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// All returns an iterator over all key-value pairs in the cache, from the
// most to the least recently used. Iteration does not update recency.
//
// The cache must not be modified during iteration.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		c.order.walk(func(i int) bool {
			n := &c.order.nodes[i]

			return yield(n.key, n.value)
		})
	}
}

// Keys returns an iterator over all keys in the cache, from the most to the
// least recently used.
//
// The cache must not be modified during iteration.
func (c *Cache[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		c.order.walk(func(i int) bool {
			return yield(c.order.nodes[i].key)
		})
	}
}
