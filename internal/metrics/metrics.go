// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moim_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moim_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moim_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moim_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Kakao API Metrics
	KakaoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moim_kakao_requests_total",
			Help: "Total number of Kakao API requests by endpoint and outcome",
		},
		[]string{"endpoint", "status"}, // status: HTTP code or "transport_error"
	)

	KakaoRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moim_kakao_request_duration_seconds",
			Help:    "Duration of Kakao API requests in seconds",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	KakaoRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moim_kakao_retries_total",
			Help: "Total number of Kakao API retries after HTTP 429",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moim_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moim_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moim_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moim_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Discovery Pipeline Metrics
	DiscoveryRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moim_discovery_requests_total",
			Help: "Total number of venue discovery requests by category and outcome status",
		},
		[]string{"category", "status"}, // status: complete, partial, unavailable
	)

	DiscoveryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moim_discovery_duration_seconds",
			Help:    "Duration of venue discovery requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"category"},
	)

	DiscoveryVenuesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moim_discovery_venues_returned",
			Help:    "Number of venues returned per discovery request",
			Buckets: []float64{0, 1, 3, 5, 10, 15, 25},
		},
	)

	DiscoveryFilteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moim_discovery_filtered_total",
			Help: "Total number of venues excluded by the content filter",
		},
		[]string{"field"}, // field: name, category
	)

	DiscoverySubqueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moim_discovery_subquery_failures_total",
			Help: "Total number of failed place searches absorbed into a partial or unavailable result",
		},
		[]string{"kind"}, // kind: primary, backfill
	)

	// Thumbnail Metrics
	ThumbnailCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moim_thumbnail_cache_total",
			Help: "Total number of thumbnail cache lookups",
		},
		[]string{"result"}, // result: hit, miss
	)

	ThumbnailLookupErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moim_thumbnail_lookup_errors_total",
			Help: "Total number of failed image searches (not cached)",
		},
	)

	// Region Lookup Metrics
	RegionLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moim_region_lookups_total",
			Help: "Total number of coordinate to region label lookups",
		},
		[]string{"result"}, // result: hit, miss, fallback
	)

	// Cache Metrics
	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moim_cache_entries",
			Help: "Current number of entries in an in-process cache",
		},
		[]string{"cache"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moim_cache_evictions_total",
			Help: "Total number of cache entries evicted or expired",
		},
		[]string{"cache", "reason"}, // reason: capacity, expired
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moim_store_operation_duration_seconds",
			Help:    "Duration of community store operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
		},
		[]string{"operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moim_store_operation_errors_total",
			Help: "Total number of failed community store operations",
		},
		[]string{"operation"},
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moim_store_gc_runs_total",
			Help: "Total number of BadgerDB value log GC runs",
		},
		[]string{"result"}, // result: rewritten, noop, error
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the inbound rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordKakaoRequest records one Kakao API round trip.
// statusCode 0 means the request never produced a response.
func RecordKakaoRequest(endpoint string, statusCode int, duration time.Duration) {
	status := "transport_error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	KakaoRequestsTotal.WithLabelValues(endpoint, status).Inc()
	KakaoRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordKakaoRetry records a retry after HTTP 429.
func RecordKakaoRetry(endpoint string) {
	KakaoRetries.WithLabelValues(endpoint).Inc()
}

// RecordDiscovery records the outcome of a ByCategory or AllCategories call.
func RecordDiscovery(category, status string, venues int, duration time.Duration) {
	DiscoveryRequestsTotal.WithLabelValues(category, status).Inc()
	DiscoveryDuration.WithLabelValues(category).Observe(duration.Seconds())
	DiscoveryVenuesReturned.Observe(float64(venues))
}

// RecordFiltered records a venue excluded by the content filter.
func RecordFiltered(field string) {
	DiscoveryFilteredTotal.WithLabelValues(field).Inc()
}

// RecordSubqueryFailure records a failed primary or backfill search.
func RecordSubqueryFailure(kind string) {
	DiscoverySubqueryFailures.WithLabelValues(kind).Inc()
}

// RecordThumbnailCache records a thumbnail cache hit or miss.
func RecordThumbnailCache(hit bool) {
	if hit {
		ThumbnailCacheTotal.WithLabelValues("hit").Inc()
	} else {
		ThumbnailCacheTotal.WithLabelValues("miss").Inc()
	}
}

// RecordThumbnailLookupError records a failed image search.
func RecordThumbnailLookupError() {
	ThumbnailLookupErrors.Inc()
}

// RecordRegionLookup records a region label lookup result.
func RecordRegionLookup(result string) {
	RegionLookupsTotal.WithLabelValues(result).Inc()
}

// SetCacheEntries sets the current entry count for a named cache.
func SetCacheEntries(cache string, n int) {
	CacheEntries.WithLabelValues(cache).Set(float64(n))
}

// RecordCacheEvictions adds n evictions for a named cache.
func RecordCacheEvictions(cache, reason string, n int) {
	if n <= 0 {
		return
	}
	CacheEvictions.WithLabelValues(cache, reason).Add(float64(n))
}

// RecordStoreOperation records a community store operation.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}

// RecordStoreGC records a BadgerDB value log GC pass.
func RecordStoreGC(result string) {
	StoreGCRuns.WithLabelValues(result).Inc()
}
