// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

/*
Package cache provides the string caches and the multi-pattern matcher used by
the venue discovery pipeline.

# Components

  - StringLRU: in-process LRU with optional TTL. Capacity 0 means unbounded.
  - RedisStringCache: Redis-backed cache (go-redis v9) for multi-replica deployments.
  - Caches: the thumbnail and region caches built from config.CacheConfig.
  - AhoCorasick: immutable multi-pattern matcher behind the content filter.

# Known Absence

Thumbnail lookups cache "no image found" as the empty string. StringCache.Get
therefore returns (value, ok, err) and callers must test ok, not value != "".

# Usage Example

	caches, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
	    return err
	}
	defer caches.Close()

	url, ok, err := caches.Thumbnails.Get(ctx, "코인노래방 강남점")

# Expiry

StringLRU expires lazily on Get. The supervisor runs a janitor that calls
CleanupExpired on every cache returned by Caches.Local and exports the entry
counts as moim_cache_entries.

# Thread Safety

StringLRU guards its list and map with a mutex. RedisStringCache relies on
server-side atomicity. AhoCorasick is read-only after construction.
*/
package cache
