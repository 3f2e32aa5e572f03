// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package kakao

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moim/internal/config"
	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/metrics"
	"github.com/tomtom215/moim/internal/models"
)

// breakerPrefix prefixes the per-endpoint breaker names used in metrics.
const breakerPrefix = "kakao-"

// BreakerName returns the metrics label of the breaker guarding endpoint.
func BreakerName(endpoint string) string { return breakerPrefix + endpoint }

// Trip thresholds.
const (
	minRequestsToTrip      = 10
	failureRatioToTrip     = 0.6
	consecutiveFailsToTrip = 5
)

// CircuitBreakerClient wraps an API with one circuit breaker per Kakao
// endpoint. An image search outage opens only the image breaker, so place
// search and region lookup keep working. Ping shares the keyword breaker.
//
// The breakers run on wall-clock time (sony/gobreaker). Tests drive them
// through execute with stub functions rather than waiting out the open timeout.
type CircuitBreakerClient struct {
	client   API
	breakers map[string]*gobreaker.CircuitBreaker[interface{}]
}

// NewCircuitBreakerClient creates a Client from cfg and wraps it.
func NewCircuitBreakerClient(cfg *config.KakaoConfig, opts ...ClientOption) *CircuitBreakerClient {
	return WrapWithCircuitBreaker(NewClient(cfg, opts...))
}

// WrapWithCircuitBreaker wraps an existing API implementation.
//
// Settings, per endpoint:
//   - 3 trial requests in half-open state
//   - counts reset every minute while closed
//   - 2 minutes open before half-open
//   - opens after 5 consecutive failures, or >= 60% failures over >= 10 requests
func WrapWithCircuitBreaker(client API) *CircuitBreakerClient {
	cbc := &CircuitBreakerClient{
		client:   client,
		breakers: make(map[string]*gobreaker.CircuitBreaker[interface{}], 3),
	}
	for _, endpoint := range []string{EndpointKeyword, EndpointImage, EndpointRegion} {
		cbc.breakers[endpoint] = newBreaker(BreakerName(endpoint))
	}
	return cbc
}

func newBreaker(cbName string) *gobreaker.CircuitBreaker[interface{}] {
	log := logging.WithComponent("kakao-breaker")

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= consecutiveFailsToTrip {
				log.Warn().Str("breaker", cbName).Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
				return true
			}
			if counts.Requests < minRequestsToTrip {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= failureRatioToTrip {
				log.Warn().Str("breaker", cbName).Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
				return true
			}
			return false
		},

		// A caller giving up is not a provider failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			log.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})
}

// State returns the state of the breaker guarding endpoint as "closed",
// "half-open" or "open". Unknown endpoints report "unknown".
func (cbc *CircuitBreakerClient) State(endpoint string) string {
	cb, ok := cbc.breakers[endpoint]
	if !ok {
		return "unknown"
	}
	return stateToString(cb.State())
}

// execute runs fn under the breaker for endpoint and records the outcome.
func (cbc *CircuitBreakerClient) execute(endpoint string, fn func() (interface{}, error)) (interface{}, error) {
	cb := cbc.breakers[endpoint]
	name := cb.Name()

	result, err := cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", name).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(name, "failure").Inc()
		counts := cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
	return result, nil
}

// castResult type-asserts a breaker result. A nil result yields the zero value.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// SearchKeyword runs a keyword search with circuit breaker protection.
func (cbc *CircuitBreakerClient) SearchKeyword(ctx context.Context, q KeywordQuery) ([]models.RawPlace, error) {
	return castResult[[]models.RawPlace](cbc.execute(EndpointKeyword, func() (interface{}, error) {
		return cbc.client.SearchKeyword(ctx, q)
	}))
}

// SearchImage runs an image search with circuit breaker protection.
func (cbc *CircuitBreakerClient) SearchImage(ctx context.Context, query string, size int) ([]models.ImageDocument, error) {
	return castResult[[]models.ImageDocument](cbc.execute(EndpointImage, func() (interface{}, error) {
		return cbc.client.SearchImage(ctx, query, size)
	}))
}

// RegionCode resolves a coordinate with circuit breaker protection.
func (cbc *CircuitBreakerClient) RegionCode(ctx context.Context, lon, lat float64) ([]models.Region, error) {
	return castResult[[]models.Region](cbc.execute(EndpointRegion, func() (interface{}, error) {
		return cbc.client.RegionCode(ctx, lon, lat)
	}))
}

// Ping checks connectivity with circuit breaker protection.
func (cbc *CircuitBreakerClient) Ping(ctx context.Context) error {
	_, err := cbc.execute(EndpointKeyword, func() (interface{}, error) {
		return nil, cbc.client.Ping(ctx)
	})
	return err
}

var (
	_ API = (*Client)(nil)
	_ API = (*CircuitBreakerClient)(nil)
)
