// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

/*
Package main is the entry point for the Moim server.

Moim recommends teen-friendly venues (karaoke, escape rooms, board game
cafes, cinemas, cafes) around a location using the Kakao Local and Search
APIs, and stores the community side of the app: bookmarks, meeting plans,
board posts and friends.

# Application Architecture

	RootSupervisor ("moim")
	├── DataSupervisor ("data-layer")
	│   └── Maintenance (cache expiry sweeps, BadgerDB value log GC)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Kakao client: rate limited, retried on 429, behind a gobreaker circuit breaker
 4. Caches: thumbnail cache (memory LRU or Redis) and region label LRU
 5. Discovery pipeline: content filter, keyword search, thumbnail enrichment
 6. Community store: BadgerDB
 7. Authentication: JWT bearer tokens or trusted identity headers
 8. Supervisor tree and HTTP server

# Configuration

Environment variables override config.yaml, which overrides the defaults:

	# Server
	HTTP_PORT=8080
	ENVIRONMENT=production        # development or production
	LOG_LEVEL=info
	LOG_FORMAT=json               # json or console

	# Kakao
	KAKAO_REST_API_KEY=<key>      # required
	KAKAO_REQUESTS_PER_SECOND=10

	# Caches
	CACHE_BACKEND=memory          # memory or redis
	REDIS_ADDR=localhost:6379

	# Store
	STORE_PATH=/data/moim

	# Authentication
	AUTH_MODE=jwt                 # jwt or none
	JWT_SECRET=<32+ chars>

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for HTTP_SHUTDOWN_TIMEOUT, then the store and caches are closed.

# Example Usage

Local development without authentication:

	export KAKAO_REST_API_KEY=your-rest-api-key
	export AUTH_MODE=none
	export STORE_PATH=./data
	./moim

	curl 'localhost:8080/api/v1/places?category=escape&x=127.0276&y=37.4979'
*/
package main
