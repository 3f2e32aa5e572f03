// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStringCache is a StringCache backed by Redis, shared across replicas.
// Keys are namespaced with prefix and written with SET ... EX ttl, so writes
// are atomic and idempotent on the server.
type RedisStringCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisClient creates a go-redis client for addr.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisStringCache wraps client. A non-positive ttl stores keys without expiry.
func NewRedisStringCache(client *redis.Client, prefix string, ttl time.Duration) *RedisStringCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStringCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisStringCache) key(k string) string {
	return c.prefix + k
}

// Get returns the cached value. A missing key is ("", false, nil).
func (c *RedisStringCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores value under key with the configured TTL.
func (c *RedisStringCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, c.key(key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (c *RedisStringCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

// Ping checks connectivity to the Redis server.
func (c *RedisStringCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
