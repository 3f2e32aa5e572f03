// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

// Package logging provides centralized zerolog-based structured logging for Moim.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Warn().Err(err).Str("phrase", phrase).Msg("Place search failed")
//
// # Context Logging
//
// HTTP middleware stores a request ID, a correlation ID and, for
// authenticated routes, the subject (user ID) in the request context.
// Ctx attaches all three to every line:
//
//	logging.Ctx(ctx).Debug().Str("rule", rule).Msg("Venue excluded")
//
// # Configuration
//
//	LOG_LEVEL   trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  json, console (default: json)
//	LOG_CALLER  include caller file:line (default: false)
//
// Venue exclusions and thumbnail cache decisions are logged at debug.
// Provider failures that were degraded to an empty result are logged at warn.
//
// # slog Bridge
//
// NewSlogLogger returns an *slog.Logger backed by zerolog. The supervisor
// tree hands it to sutureslog so service restarts appear in the same stream.
package logging
