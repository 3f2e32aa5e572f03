// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AuthAttempts counts authentication decisions.
// Labels:
//   - method: "jwt" or "none"
//   - outcome: "success", "missing", "invalid", "expired"
var AuthAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "moim_auth_attempts_total",
		Help: "Total number of authentication attempts by method and outcome",
	},
	[]string{"method", "outcome"},
)

// RecordAuthAttempt records one authentication decision.
func RecordAuthAttempt(method, outcome string) {
	AuthAttempts.WithLabelValues(method, outcome).Inc()
}
