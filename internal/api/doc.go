// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

/*
Package api serves Moim's HTTP API on a chi router.

# Response Envelope

Every endpoint answers with APIResponse:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Failures set success=false and carry an APIError with a machine-readable
code (BAD_REQUEST, VALIDATION_FAILED, NOT_FOUND, FORBIDDEN, CONFLICT,
EXTERNAL_SERVICE_FAILED, ...). Store and discovery errors are mapped to codes
in errors.go with errors.Is.

Venue listings add the discovery outcome to meta:

	"meta": {"status": "partial", "failures": 1, ...}

so a client can tell an empty area from a provider outage.

# Route Groups

	/api/v1/health/*          public, permissive rate limit
	/api/v1/places/*          public, API rate limit
	/api/v1/location/region   public, API rate limit
	/api/v1/bookmarks/*       authenticated
	/api/v1/meetings/*        authenticated, write limit on mutations
	/api/v1/posts/*           authenticated, write limit on mutations
	/api/v1/friends/*         authenticated, write limit on mutations
	/metrics                  Prometheus exposition

Authentication is delegated to auth.Middleware. Handlers read the caller
from auth.SubjectFromContext and never trust user IDs from request bodies.

# Validation

Request bodies and query strings decode into structs carrying validate tags
(see requests.go); validation.ValidateStruct failures become 400
VALIDATION_FAILED with per-field details.
*/
package api
