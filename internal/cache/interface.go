// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package cache

import "context"

// StringCache is a string-to-string cache shared by the discovery pipeline.
// Both StringLRU (in-process) and RedisStringCache (shared) implement it.
//
// The empty string is a legitimate value: callers use it to remember that a
// lookup found nothing, so Get distinguishes "cached empty" (ok=true) from
// "not cached" (ok=false).
//
// Usage:
//
//	var c StringCache = NewStringLRU(5000, 24*time.Hour)
//
//	if url, ok, err := c.Get(ctx, name); err == nil && ok {
//	    // use cached url (possibly "")
//	}
//	_ = c.Set(ctx, name, url)
type StringCache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key. Repeated writes of the same value are harmless.
	Set(ctx context.Context, key, value string) error
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int // 0 = unbounded
}

// HitRate returns the hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Verify interface implementations at compile time
var (
	_ StringCache = (*StringLRU)(nil)
	_ StringCache = (*RedisStringCache)(nil)
)
