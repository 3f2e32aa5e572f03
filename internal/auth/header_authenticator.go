// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package auth

import (
	"context"
	"net/http"
	"strings"
)

// Identity headers read in none mode.
const (
	HeaderUserID       = "X-User-ID"
	HeaderUserNickname = "X-User-Nickname"
	AnonymousSubject   = "anonymous"
)

// HeaderAuthenticator trusts the identity headers. It never fails.
type HeaderAuthenticator struct{}

// Authenticate returns the subject named by X-User-ID, or "anonymous".
func (HeaderAuthenticator) Authenticate(_ context.Context, r *http.Request) (*AuthSubject, error) {
	id := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if id == "" {
		id = AnonymousSubject
	}
	return &AuthSubject{
		ID:         id,
		Nickname:   strings.TrimSpace(r.Header.Get(HeaderUserNickname)),
		Issuer:     "header",
		AuthMethod: AuthModeNone,
	}, nil
}

// Name returns the authenticator name.
func (HeaderAuthenticator) Name() string {
	return string(AuthModeNone)
}
