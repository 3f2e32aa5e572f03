// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package kakao

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moim/internal/metrics"
	"github.com/tomtom215/moim/internal/models"
)

var errSimulated = errors.New("simulated Kakao failure")

// stubAPI returns canned results and counts calls.
type stubAPI struct {
	places []models.RawPlace
	images []models.ImageDocument
	err    error
	calls  int

	// imageErr, when set, fails image searches only.
	imageErr error
}

func (s *stubAPI) SearchKeyword(context.Context, KeywordQuery) ([]models.RawPlace, error) {
	s.calls++
	return s.places, s.err
}

func (s *stubAPI) SearchImage(context.Context, string, int) ([]models.ImageDocument, error) {
	s.calls++
	if s.imageErr != nil {
		return nil, s.imageErr
	}
	return s.images, s.err
}

func (s *stubAPI) RegionCode(context.Context, float64, float64) ([]models.Region, error) {
	s.calls++
	return nil, s.err
}

func (s *stubAPI) Ping(context.Context) error {
	s.calls++
	return s.err
}

func fail() (interface{}, error)    { return nil, errSimulated }
func succeed() (interface{}, error) { return "ok", nil }

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cbc := WrapWithCircuitBreaker(&stubAPI{})

	for i := 0; i < consecutiveFailsToTrip-1; i++ {
		_, _ = cbc.execute(EndpointKeyword, fail)
	}
	if cbc.breakers[EndpointKeyword].State() != gobreaker.StateClosed {
		t.Fatalf("state after %d failures = %v, want closed", consecutiveFailsToTrip-1, cbc.breakers[EndpointKeyword].State())
	}

	_, _ = cbc.execute(EndpointKeyword, fail)
	if cbc.breakers[EndpointKeyword].State() != gobreaker.StateOpen {
		t.Fatalf("state after %d failures = %v, want open", consecutiveFailsToTrip, cbc.breakers[EndpointKeyword].State())
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(BreakerName(EndpointKeyword))); got != 2 {
		t.Errorf("state gauge = %v, want 2 (open)", got)
	}
	if cbc.State(EndpointKeyword) != "open" {
		t.Errorf("State() = %q", cbc.State(EndpointKeyword))
	}
}

func TestCircuitBreaker_OpensOnFailureRatio(t *testing.T) {
	cbc := WrapWithCircuitBreaker(&stubAPI{})

	// F F S F F S F F S F: never 5 in a row, 7 of 10 failed.
	pattern := []bool{false, false, true, false, false, true, false, false, true, false}
	for _, ok := range pattern {
		if ok {
			_, _ = cbc.execute(EndpointKeyword, succeed)
		} else {
			_, _ = cbc.execute(EndpointKeyword, fail)
		}
	}
	if cbc.breakers[EndpointKeyword].State() != gobreaker.StateOpen {
		t.Errorf("state = %v, want open at 70%% failures", cbc.breakers[EndpointKeyword].State())
	}
}

func TestCircuitBreaker_StaysClosedBelowThreshold(t *testing.T) {
	cbc := WrapWithCircuitBreaker(&stubAPI{})

	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			_, _ = cbc.execute(EndpointKeyword, fail)
		} else {
			_, _ = cbc.execute(EndpointKeyword, succeed)
		}
	}
	if cbc.breakers[EndpointKeyword].State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed at 50%% failures", cbc.breakers[EndpointKeyword].State())
	}
}

func TestCircuitBreaker_CancellationIsNotFailure(t *testing.T) {
	cbc := WrapWithCircuitBreaker(&stubAPI{})

	for i := 0; i < 2*consecutiveFailsToTrip; i++ {
		_, _ = cbc.execute(EndpointKeyword, func() (interface{}, error) { return nil, context.Canceled })
	}
	if cbc.breakers[EndpointKeyword].State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed", cbc.breakers[EndpointKeyword].State())
	}
}

func TestCircuitBreaker_RejectsWhenOpen(t *testing.T) {
	stub := &stubAPI{err: errSimulated}
	cbc := WrapWithCircuitBreaker(stub)
	ctx := context.Background()

	for i := 0; i < consecutiveFailsToTrip; i++ {
		if _, err := cbc.SearchKeyword(ctx, KeywordQuery{Query: "영화관"}); !errors.Is(err, errSimulated) {
			t.Fatalf("call %d error = %v, want simulated failure", i, err)
		}
	}

	callsBefore := stub.calls
	rejectedBefore := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues(BreakerName(EndpointKeyword), "rejected"))

	_, err := cbc.SearchKeyword(ctx, KeywordQuery{Query: "영화관"})
	if !errors.Is(err, ErrCircuitOpen) || !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrCircuitOpen wrapping ErrOpenState", err)
	}
	if stub.calls != callsBefore {
		t.Error("open circuit must not reach the wrapped client")
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues(BreakerName(EndpointKeyword), "rejected")); got != rejectedBefore+1 {
		t.Errorf("rejected counter delta = %v, want 1", got-rejectedBefore)
	}
}

func TestCircuitBreaker_Delegates(t *testing.T) {
	stub := &stubAPI{
		places: []models.RawPlace{{ID: "1", PlaceName: "CGV 강남"}},
		images: []models.ImageDocument{{ThumbnailURL: "https://t/1"}},
	}
	cbc := WrapWithCircuitBreaker(stub)
	ctx := context.Background()

	places, err := cbc.SearchKeyword(ctx, KeywordQuery{Query: "영화관"})
	if err != nil || len(places) != 1 || places[0].PlaceName != "CGV 강남" {
		t.Errorf("SearchKeyword() = %+v, %v", places, err)
	}
	images, err := cbc.SearchImage(ctx, "CGV 강남", 1)
	if err != nil || len(images) != 1 {
		t.Errorf("SearchImage() = %+v, %v", images, err)
	}
	regions, err := cbc.RegionCode(ctx, 127, 37.5)
	if err != nil || regions != nil {
		t.Errorf("RegionCode() = %+v, %v", regions, err)
	}
	if err := cbc.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if stub.calls != 4 {
		t.Errorf("calls = %d, want 4", stub.calls)
	}
}

func TestCastResult(t *testing.T) {
	if _, err := castResult[[]models.RawPlace]("not a slice", nil); err == nil {
		t.Error("expected type mismatch error")
	}
	got, err := castResult[[]models.RawPlace](nil, nil)
	if err != nil || got != nil {
		t.Errorf("castResult(nil) = %v, %v", got, err)
	}
	if _, err := castResult[[]models.RawPlace](nil, errSimulated); !errors.Is(err, errSimulated) {
		t.Errorf("error = %v", err)
	}
}

func TestStateConversions(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		f     float64
		s     string
	}{
		{gobreaker.StateClosed, 0, "closed"},
		{gobreaker.StateHalfOpen, 1, "half-open"},
		{gobreaker.StateOpen, 2, "open"},
		{gobreaker.State(99), -1, "unknown"},
	}
	for _, tt := range tests {
		if stateToFloat(tt.state) != tt.f || stateToString(tt.state) != tt.s {
			t.Errorf("state %v = %v/%s, want %v/%s", tt.state, stateToFloat(tt.state), stateToString(tt.state), tt.f, tt.s)
		}
	}
}

func TestCircuitBreaker_EndpointsTripIndependently(t *testing.T) {
	stub := &stubAPI{
		places:   []models.RawPlace{{ID: "1", PlaceName: "코인노래방 역삼점"}},
		imageErr: errSimulated,
	}
	cbc := WrapWithCircuitBreaker(stub)
	ctx := context.Background()

	for i := 0; i < 2*consecutiveFailsToTrip; i++ {
		_, _ = cbc.SearchImage(ctx, "코인노래방 역삼점", 1)
	}
	if got := cbc.State(EndpointImage); got != "open" {
		t.Fatalf("image breaker = %q, want open", got)
	}
	if _, err := cbc.SearchImage(ctx, "코인노래방 역삼점", 1); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("SearchImage() error = %v, want ErrCircuitOpen", err)
	}

	places, err := cbc.SearchKeyword(ctx, KeywordQuery{Query: "코인노래방"})
	if err != nil || len(places) != 1 {
		t.Errorf("SearchKeyword() = %+v, %v; keyword search must not share the image breaker", places, err)
	}
	if _, err := cbc.RegionCode(ctx, 127.03, 37.5); err != nil {
		t.Errorf("RegionCode() error = %v", err)
	}
	for _, endpoint := range []string{EndpointKeyword, EndpointRegion} {
		if got := cbc.State(endpoint); got != "closed" {
			t.Errorf("%s breaker = %q, want closed", endpoint, got)
		}
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(BreakerName(EndpointImage))); got != 2 {
		t.Errorf("image state gauge = %v, want 2 (open)", got)
	}
	if cbc.State("unknown-endpoint") != "unknown" {
		t.Error("unknown endpoint should report unknown")
	}
}
