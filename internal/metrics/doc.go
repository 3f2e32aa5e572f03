// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and are
exposed at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - moim_api_requests_total (method, endpoint, status_code)
  - moim_api_request_duration_seconds (method, endpoint)
  - moim_api_active_requests
  - moim_api_rate_limit_hits_total (endpoint)

Kakao API Metrics:
  - moim_kakao_requests_total (endpoint, status)
  - moim_kakao_request_duration_seconds (endpoint)
  - moim_kakao_retries_total (endpoint)
  - moim_circuit_breaker_state (name): 0=closed, 1=half-open, 2=open
  - moim_circuit_breaker_requests_total (name, result)
  - moim_circuit_breaker_state_transitions_total (name, from_state, to_state)

Discovery Metrics:
  - moim_discovery_requests_total (category, status): status is complete, partial or unavailable
  - moim_discovery_duration_seconds (category)
  - moim_discovery_venues_returned
  - moim_discovery_filtered_total (field): venues dropped by the content filter
  - moim_discovery_subquery_failures_total (kind)
  - moim_thumbnail_cache_total (result)
  - moim_thumbnail_lookup_errors_total
  - moim_region_lookups_total (result)

Storage Metrics:
  - moim_cache_entries (cache)
  - moim_cache_evictions_total (cache, reason)
  - moim_store_operation_duration_seconds (operation)
  - moim_store_operation_errors_total (operation)
  - moim_store_gc_runs_total (result)

# Example Queries

Share of discovery requests degraded by provider failures:

	sum(rate(moim_discovery_requests_total{status!="complete"}[5m]))
	  / sum(rate(moim_discovery_requests_total[5m]))

Thumbnail cache hit rate:

	rate(moim_thumbnail_cache_total{result="hit"}[5m])
	  / rate(moim_thumbnail_cache_total[5m])
*/
package metrics
