// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

/*
Package kakao is the HTTP client for the Kakao Local and Search REST APIs.

Endpoints used:

	GET /v2/local/search/keyword.json        keyword place search (SearchKeyword)
	GET /v2/search/image                     image search for thumbnails (SearchImage)
	GET /v2/local/geo/coord2regioncode.json  coordinate to region (RegionCode)

Every request carries "Authorization: KakaoAK <REST API key>".

# Resilience

  - Outbound requests pass through a token bucket (golang.org/x/time/rate)
    sized by KAKAO_REQUESTS_PER_SECOND.
  - HTTP 429 is retried with exponential backoff (1s, 2s, 4s, ...) and honors
    Retry-After, up to KAKAO_MAX_RETRIES times.
  - CircuitBreakerClient wraps Client with one sony/gobreaker/v2 breaker per
    endpoint (kakao-keyword, kakao-image, kakao-region). A circuit opens after
    5 consecutive failures, or when at least 60% of 10 or more requests in a
    one-minute window fail, and stays open for two minutes.

Non-2xx responses are returned as *APIError. A rejected call on an open circuit
returns an error matching ErrCircuitOpen.

# Usage

	client := kakao.NewCircuitBreakerClient(&cfg.Kakao)
	places, err := client.SearchKeyword(ctx, kakao.KeywordQuery{
	    Query: "코인노래방", X: 126.9784147, Y: 37.5666805, Radius: 2000, Size: 15,
	})
*/
package kakao
