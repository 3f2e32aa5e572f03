// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/moim/internal/models"
)

// AuthMode represents the authentication strategy.
type AuthMode string

const (
	// AuthModeNone trusts identity headers. Development only.
	AuthModeNone AuthMode = "none"

	// AuthModeJWT verifies HS256 bearer tokens.
	AuthModeJWT AuthMode = "jwt"
)

// ParseAuthMode converts a string to AuthMode. An empty string selects jwt.
func ParseAuthMode(s string) (AuthMode, error) {
	switch s {
	case "jwt", "":
		return AuthModeJWT, nil
	case "none":
		return AuthModeNone, nil
	default:
		return "", errors.New("invalid auth mode: " + s)
	}
}

// String returns the string representation of AuthMode.
func (m AuthMode) String() string {
	return string(m)
}

// Standard authentication errors
var (
	ErrNoCredentials      = errors.New("no credentials provided")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrExpiredCredentials = errors.New("credentials expired")
)

// Authenticator extracts a subject from a request.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) (*AuthSubject, error)
	Name() string
}

// AuthSubject is the user a request acts for.
type AuthSubject struct {
	ID         string   `json:"id"`
	Nickname   string   `json:"nickname"`
	Issuer     string   `json:"issuer,omitempty"`
	AuthMethod AuthMode `json:"auth_method"`
	ExpiresAt  int64    `json:"expires_at,omitempty"`
}

// DisplayName returns the nickname, or models.DefaultNickname when unset.
func (s *AuthSubject) DisplayName() string {
	if s == nil || s.Nickname == "" {
		return models.DefaultNickname
	}
	return s.Nickname
}

// IsExpired checks if the authentication has expired.
func (s *AuthSubject) IsExpired() bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return time.Now().Unix() > s.ExpiresAt
}

// AuthSubjectFromClaims creates an AuthSubject from verified token claims.
func AuthSubjectFromClaims(claims *Claims) *AuthSubject {
	if claims == nil {
		return nil
	}
	subject := &AuthSubject{
		ID:         claims.Subject,
		Nickname:   claims.Nickname,
		Issuer:     claims.Issuer,
		AuthMethod: AuthModeJWT,
	}
	if claims.ExpiresAt != nil {
		subject.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return subject
}

type contextKey string

const subjectContextKey contextKey = "auth-subject"

// ContextWithSubject returns a copy of ctx carrying subject.
func ContextWithSubject(ctx context.Context, subject *AuthSubject) context.Context {
	return context.WithValue(ctx, subjectContextKey, subject)
}

// SubjectFromContext returns the subject stored by RequireSubject.
func SubjectFromContext(ctx context.Context) (*AuthSubject, bool) {
	subject, ok := ctx.Value(subjectContextKey).(*AuthSubject)
	return subject, ok && subject != nil
}
