// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/moim/internal/config"
	"github.com/tomtom215/moim/internal/testinfra"
)

func TestRedisStringCache_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rc, err := testinfra.NewRedisContainer(ctx)
	if err != nil {
		t.Fatalf("Failed to create Redis container: %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, rc.Container)

	client := NewRedisClient(rc.Addr, "", 0)
	defer client.Close()

	c := NewRedisStringCache(client, "test:", time.Minute)

	t.Run("miss", func(t *testing.T) {
		v, ok, err := c.Get(ctx, "unknown")
		if err != nil || ok || v != "" {
			t.Errorf("Get() = %q, %v, %v; want miss", v, ok, err)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		if err := c.Set(ctx, "방탈출카페 홍대점", "https://img.example/b.jpg"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		v, ok, err := c.Get(ctx, "방탈출카페 홍대점")
		if err != nil || !ok || v != "https://img.example/b.jpg" {
			t.Errorf("Get() = %q, %v, %v", v, ok, err)
		}
	})

	t.Run("empty value is a hit", func(t *testing.T) {
		if err := c.Set(ctx, "no-image", ""); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		v, ok, err := c.Get(ctx, "no-image")
		if err != nil || !ok || v != "" {
			t.Errorf("Get() = %q, %v, %v; want cached empty", v, ok, err)
		}
	})

	t.Run("ttl applied", func(t *testing.T) {
		ttl, err := client.TTL(ctx, "test:no-image").Result()
		if err != nil {
			t.Fatalf("TTL() error = %v", err)
		}
		if ttl <= 0 || ttl > time.Minute {
			t.Errorf("TTL = %v, want (0, 1m]", ttl)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := c.Delete(ctx, "no-image"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, ok, _ := c.Get(ctx, "no-image"); ok {
			t.Error("key should be gone after Delete")
		}
	})

	t.Run("open with redis backend", func(t *testing.T) {
		caches, err := Open(ctx, config.CacheConfig{Backend: "redis", RedisAddr: rc.Addr, TTL: time.Minute})
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer caches.Close()

		if _, ok := caches.Thumbnails.(*RedisStringCache); !ok {
			t.Errorf("Thumbnails type = %T, want *RedisStringCache", caches.Thumbnails)
		}
		if _, ok := caches.Local()[NameThumbnails]; ok {
			t.Error("redis-backed thumbnails should not be swept locally")
		}
		if err := caches.Ping(ctx); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
	})
}
