// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package kakao

import (
	"errors"
	"fmt"
	"io"
)

// ErrCircuitOpen is returned when the circuit breaker rejects a call.
var ErrCircuitOpen = errors.New("kakao: circuit breaker open")

// maxErrorBodySize bounds how much of an error response is kept.
const maxErrorBodySize = 4 * 1024

// APIError is a non-2xx response from Kakao.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("kakao %s: HTTP %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("kakao %s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// readBodyForError reads at most maxErrorBodySize bytes of r.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize+1))
	if err != nil {
		return "(failed to read response body)"
	}
	if len(body) > maxErrorBodySize {
		return string(body[:maxErrorBodySize]) + "... (truncated)"
	}
	return string(body)
}
