// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moim/internal/config"
	"github.com/tomtom215/moim/internal/logging"
)

// Middleware enforces that community routes have a subject.
type Middleware struct {
	authenticator Authenticator
}

// NewMiddleware builds the middleware for the configured auth mode.
func NewMiddleware(cfg *config.SecurityConfig) (*Middleware, error) {
	mode, err := ParseAuthMode(cfg.AuthMode)
	if err != nil {
		return nil, err
	}
	switch mode {
	case AuthModeNone:
		logging.Warn().Msg("AUTH_MODE=none: identity is taken from request headers")
		return NewMiddlewareWithAuthenticator(HeaderAuthenticator{}), nil
	default:
		manager, err := NewJWTManager(cfg)
		if err != nil {
			return nil, fmt.Errorf("jwt auth: %w", err)
		}
		return NewMiddlewareWithAuthenticator(NewJWTAuthenticator(manager)), nil
	}
}

// NewMiddlewareWithAuthenticator wraps an arbitrary authenticator.
func NewMiddlewareWithAuthenticator(a Authenticator) *Middleware {
	return &Middleware{authenticator: a}
}

// RequireSubject rejects requests without valid credentials with 401 and
// stores the subject in the request context otherwise.
func (m *Middleware) RequireSubject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		subject, err := m.authenticator.Authenticate(ctx, r)
		if err != nil {
			outcome := authOutcome(err)
			RecordAuthAttempt(m.authenticator.Name(), outcome)
			logging.Ctx(ctx).Debug().Err(err).Str("outcome", outcome).Msg("Authentication failed")
			writeUnauthorized(w, err)
			return
		}
		RecordAuthAttempt(m.authenticator.Name(), "success")

		ctx = ContextWithSubject(ctx, subject)
		ctx = logging.ContextWithSubject(ctx, subject.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func authOutcome(err error) string {
	switch {
	case errors.Is(err, ErrNoCredentials):
		return "missing"
	case errors.Is(err, ErrExpiredCredentials):
		return "expired"
	default:
		return "invalid"
	}
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	var body errorBody
	body.Error.Code = "UNAUTHORIZED"
	switch {
	case errors.Is(err, ErrNoCredentials):
		body.Error.Message = "Authentication required"
	case errors.Is(err, ErrExpiredCredentials):
		body.Error.Message = "Token expired"
	default:
		body.Error.Message = "Invalid token"
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="moim"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(body)
}
