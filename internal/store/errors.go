// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package store

import "errors"

// Sentinel errors returned by Store methods. Match with errors.Is.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrAlreadyFriends = errors.New("already friends")
	ErrRequestPending = errors.New("friend request already pending")
	ErrInvalidRequest = errors.New("invalid request")
)

// isDomainError reports whether err is an expected outcome rather than a
// storage failure.
func isDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrAlreadyFriends) ||
		errors.Is(err, ErrRequestPending) ||
		errors.Is(err, ErrInvalidRequest)
}
