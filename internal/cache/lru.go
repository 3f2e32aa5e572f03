// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package cache

import (
	"context"
	"sync"
	"time"
)

type lruEntry struct {
	key       string
	value     string
	prev      *lruEntry
	next      *lruEntry
	expiresAt time.Time // zero = never
}

// StringLRU is a thread-safe Least Recently Used string cache with optional TTL.
//
// Key features:
//   - O(1) Get, Set, Remove operations
//   - O(1) LRU eviction when capacity is reached (capacity 0 = unbounded)
//   - TTL with lazy expiration plus CleanupExpired for the janitor (ttl 0 = no expiry)
//   - The empty string is a valid cached value (used for "known absent")
//
// The doubly-linked list orders entries by recency and the map gives O(1) lookup.
type StringLRU struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time

	items map[string]*lruEntry

	// head.next is the most recently used, tail.prev is the least recently used
	head *lruEntry
	tail *lruEntry

	hits      int64
	misses    int64
	evictions int64
}

// NewStringLRU creates a cache holding at most capacity entries for ttl each.
// Non-positive capacity means unbounded; non-positive ttl means entries never expire.
func NewStringLRU(capacity int, ttl time.Duration) *StringLRU {
	if capacity < 0 {
		capacity = 0
	}
	if ttl < 0 {
		ttl = 0
	}

	c := &StringLRU{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[string]*lruEntry),
		head:     &lruEntry{},
		tail:     &lruEntry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the cached value for key. Found entries become most recently used.
// The error is always nil; it exists to satisfy StringCache.
func (c *StringLRU) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.Peek(key)
	return v, ok, nil
}

// Peek is Get without a context.
func (c *StringLRU) Peek(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.items[key]
	if !exists {
		c.misses++
		return "", false
	}
	if c.expired(entry, c.now()) {
		c.removeEntry(entry)
		c.misses++
		return "", false
	}

	c.moveToFront(entry)
	c.hits++
	return entry.value, true
}

// Set stores value under key. Writing the same value twice is a no-op apart
// from refreshing recency and expiry. The error is always nil.
func (c *StringLRU) Set(_ context.Context, key, value string) error {
	c.Put(key, value)
	return nil
}

// Put is Set without a context.
func (c *StringLRU) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	if entry, exists := c.items[key]; exists {
		entry.value = value
		entry.expiresAt = expiresAt
		c.moveToFront(entry)
		return
	}

	entry := &lruEntry{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(entry)
	c.items[key] = entry

	for c.capacity > 0 && len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// Remove deletes key and reports whether it was present.
func (c *StringLRU) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.items[key]; exists {
		c.removeEntry(entry)
		return true
	}
	return false
}

// Len returns the current number of entries, including expired ones not yet collected.
func (c *StringLRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes all entries.
func (c *StringLRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*lruEntry)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// CleanupExpired removes all expired entries and returns how many were removed.
func (c *StringLRU) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ttl == 0 {
		return 0
	}

	now := c.now()
	removed := 0
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if c.expired(entry, now) {
			c.removeEntry(entry)
			removed++
		}
		entry = prev
	}
	return removed
}

// Stats returns cache statistics.
func (c *StringLRU) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.items),
		Capacity:  c.capacity,
	}
}

// Internal methods (must be called with lock held)

func (c *StringLRU) expired(entry *lruEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && now.After(entry.expiresAt)
}

func (c *StringLRU) addToFront(entry *lruEntry) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *StringLRU) moveToFront(entry *lruEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *StringLRU) removeEntry(entry *lruEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}

func (c *StringLRU) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
	c.evictions++
}
