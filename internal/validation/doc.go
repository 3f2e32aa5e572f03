// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built once and reused; it reports JSON field
// names and carries the community-specific rules:
//
//   - notblank: string must contain a non-whitespace character
//   - post_type: one of new, review, event, general
//   - meeting_status: one of upcoming, completed
//
// # Quick Start
//
//	type CreatePostRequest struct {
//	    Type    string `json:"type" validate:"required,post_type"`
//	    Title   string `json:"title" validate:"notblank,max=100"`
//	    Content string `json:"content" validate:"notblank,max=2000"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    api.NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
//	    return
//	}
//
// Validation failures map to HTTP 400 with code VALIDATION_FAILED.
package validation
