// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

/*
Package middleware provides the service's own HTTP middleware. Everything here
has the standard func(http.Handler) http.Handler shape so it mounts directly on
a chi router next to chi's own middleware.

Key Components:

  - RequestID: accepts or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled by
    chi route pattern so path parameters do not explode cardinality
  - AccessLog: one zerolog line per request, warn above a latency threshold

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(chimw.Recoverer)
	r.Use(middleware.PrometheusMetrics)

Authentication middleware lives in internal/auth.
*/
package middleware
