// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/moim/internal/logging"
)

// Version is set at build time via -ldflags.
var Version = "dev"

const readinessTimeout = 3 * time.Second

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status  string  `json:"status"`
	Version string  `json:"version"`
	Uptime  float64 `json:"uptime_seconds"`
}

// ReadinessStatus is the payload of GET /api/v1/health/ready.
type ReadinessStatus struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}

// Health reports basic service information.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{
		Status:  "healthy",
		Version: Version,
		Uptime:  time.Since(h.startTime).Seconds(),
	})
}

// HealthLive is the liveness probe. It never touches dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe. It pings the store and, when
// configured, the Kakao API.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status := ReadinessStatus{Ready: true, Checks: make(map[string]string, 2)}
	check := func(name string, p Pinger) {
		if p == nil {
			return
		}
		if err := p.Ping(ctx); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("dependency", name).Msg("Readiness check failed")
			status.Ready = false
			status.Checks[name] = "unavailable"
			return
		}
		status.Checks[name] = "ok"
	}
	check("store", h.store)
	check("kakao", h.provider)

	rw := NewResponseWriter(w, r)
	if !status.Ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service not ready", status)
		return
	}
	rw.Success(status)
}
