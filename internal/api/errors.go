// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/moim/internal/discovery"
	"github.com/tomtom215/moim/internal/store"
)

// respondError maps a store or discovery error to an API error response.
// resource names the entity for 404 messages ("Post", "Meeting", ...).
func respondError(w http.ResponseWriter, r *http.Request, resource string, err error) {
	rw := NewResponseWriter(w, r)
	switch {
	case errors.Is(err, store.ErrNotFound):
		rw.NotFound(resource + " not found")
	case errors.Is(err, store.ErrForbidden):
		rw.Forbidden("Only the owner can modify this " + strings.ToLower(resource))
	case errors.Is(err, store.ErrAlreadyFriends):
		rw.Conflict("Already friends")
	case errors.Is(err, store.ErrRequestPending):
		rw.Conflict("A friend request is already pending")
	case errors.Is(err, store.ErrInvalidRequest):
		rw.BadRequest("Invalid request")
	case errors.Is(err, discovery.ErrProviderUnavailable):
		rw.ExternalServiceError("kakao", err)
	default:
		rw.DatabaseError(err)
	}
}
