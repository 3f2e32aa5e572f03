// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/moim/internal/config"
	"github.com/tomtom215/moim/internal/logging"
)

// Cache names used for metrics and Redis key prefixes.
const (
	NameThumbnails = "thumbnail"
	NameRegions    = "region"
)

// Region labels are few and cheap; they always live in-process.
const regionCapacity = 2048

// Caches holds the caches the discovery pipeline uses, built from configuration.
type Caches struct {
	Thumbnails StringCache
	Regions    *StringLRU

	redis  *redis.Client
	locals map[string]*StringLRU
}

// Open builds the caches for cfg. With the redis backend the thumbnail cache is
// shared through Redis and the connection is verified before returning.
func Open(ctx context.Context, cfg config.CacheConfig) (*Caches, error) {
	c := &Caches{
		Regions: NewStringLRU(regionCapacity, cfg.TTL),
		locals:  make(map[string]*StringLRU),
	}
	c.locals[NameRegions] = c.Regions

	switch cfg.Backend {
	case "redis":
		c.redis = NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		rc := NewRedisStringCache(c.redis, "moim:"+NameThumbnails+":", cfg.TTL)
		if err := rc.Ping(ctx); err != nil {
			_ = c.redis.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		c.Thumbnails = rc
		logging.Info().Str("addr", cfg.RedisAddr).Msg("Thumbnail cache using Redis")
	default:
		lru := NewStringLRU(cfg.Capacity, cfg.TTL)
		c.Thumbnails = lru
		c.locals[NameThumbnails] = lru
		logging.Info().Int("capacity", cfg.Capacity).Dur("ttl", cfg.TTL).Msg("Thumbnail cache in memory")
	}

	return c, nil
}

// Local returns the in-process caches by name, for periodic expiry sweeps.
func (c *Caches) Local() map[string]*StringLRU {
	out := make(map[string]*StringLRU, len(c.locals))
	for k, v := range c.locals {
		out[k] = v
	}
	return out
}

// Ping checks the shared backend, if any.
func (c *Caches) Ping(ctx context.Context) error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Ping(ctx).Err()
}

// Close releases the Redis connection, if any.
func (c *Caches) Close() error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Close()
}
