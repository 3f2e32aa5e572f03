// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

// Package testinfra starts Docker containers for integration tests.
//
// Everything except this file is behind the "integration" build tag, so
// unit test runs never pull testcontainers-go into the binary:
//
//	go test -tags integration ./internal/cache/...
//
// # Redis
//
// The shared thumbnail cache runs against a throwaway Redis:
//
//	func TestRedisThumbnails(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//
//	    rc, err := testinfra.NewRedisContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, rc.Container)
//
//	    c := cache.NewRedisStringCache(cache.NewRedisClient(rc.Addr, "", 0), "moim:thumbnail:", time.Hour)
//	    // ...
//	}
//
// Tests skip when no Docker daemon answers "docker info".
package testinfra
