// Package lrucache provides a generic, fixed-capacity in-memory cache with
// least-recently-used eviction.
//
// # Architecture
//
// A [Cache] combines two structures:
//
//   - A map[K]int index for O(1) lookups
//   - A doubly linked recency list ordered from most to least recently used
//
// The list lives in an arena: entries are stored in one slice and link to
// their neighbours by slot index instead of by pointer. Promoting an entry
// or evicting the tail is a constant number of index updates.
//
// # Eviction
//
// [Cache.Get] hits and [Cache.Put] calls mark an entry as most recently
// used. When a Put for a new key finds the cache full, exactly one entry,
// the least recently used, is evicted and its slot is reused for the new
// entry. Updating an existing key never evicts. There is no time-based
// expiration.
//
// A cache created with zero capacity never retains anything.
//
// # Read-through
//
// The cache never computes values itself. The usual pattern is for the
// caller to check the cache, produce the value on a miss, and store it only
// when production succeeded:
//
//	if v, ok := c.Get(key); ok {
//		return v, nil
//	}
//	v, err := produce(key)
//	if err != nil {
//		return v, err
//	}
//	c.Put(key, v)
//
// # Thread Safety
//
// [Cache] is not safe for concurrent use. Wrap it in a mutex if it has to be
// shared between goroutines; every operation is O(1) and never blocks.
package lrucache
