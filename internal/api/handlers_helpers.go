// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moim/internal/auth"
	"github.com/tomtom215/moim/internal/validation"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// decodeJSON reads a JSON body into dst. On failure it writes a 400 and
// returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			NewResponseWriter(w, r).BadRequest("Request body too large")
		case errors.Is(err, io.EOF):
			NewResponseWriter(w, r).BadRequest("Request body is required")
		default:
			NewResponseWriter(w, r).BadRequest("Invalid JSON body")
		}
		return false
	}
	return true
}

// validateRequest validates req and writes a 400 VALIDATION_FAILED on
// failure.
func validateRequest(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if verr := validation.ValidateStruct(req); verr != nil {
		apiErr := verr.ToAPIError()
		NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

// decodeAndValidate combines decodeJSON and validateRequest.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	return decodeJSON(w, r, dst) && validateRequest(w, r, dst)
}

// subjectFrom returns the authenticated caller. The auth middleware runs
// before every community route, so a missing subject is a wiring error.
func subjectFrom(w http.ResponseWriter, r *http.Request) (*auth.AuthSubject, bool) {
	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok || subject == nil || subject.ID == "" {
		NewResponseWriter(w, r).Error(http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required")
		return nil, false
	}
	return subject, true
}

// queryParseError reports a malformed query parameter.
type queryParseError struct {
	param string
	value string
	want  string
}

func (e *queryParseError) Error() string {
	return fmt.Sprintf("query parameter %q must be %s, got %q", e.param, e.want, e.value)
}

func getIntParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &queryParseError{param: name, value: raw, want: "an integer"}
	}
	return v, nil
}

func getFloatParam(r *http.Request, name string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &queryParseError{param: name, value: raw, want: "a number"}
	}
	return &v, nil
}

func getBoolParam(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &queryParseError{param: name, value: raw, want: "a boolean"}
	}
	return &v, nil
}
