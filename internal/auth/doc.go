// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

/*
Package auth identifies the user behind a community request.

Sign-up, login and token issuance live in the third-party auth backend used by
the mobile app. This service only verifies the access tokens that backend
issues and turns them into an AuthSubject.

Authentication Modes (AUTH_MODE):

  - jwt (default): HS256 bearer tokens signed with JWT_SECRET. The "sub" claim
    is the user id and the optional "nickname" claim is the display name.
  - none: development only. The subject comes from the X-User-ID header
    (default "anonymous") and the nickname from X-User-Nickname.

Usage:

	mw, err := auth.NewMiddleware(&cfg.Security)
	if err != nil {
	    return err
	}
	r.Group(func(r chi.Router) {
	    r.Use(mw.RequireSubject)
	    r.Get("/api/v1/bookmarks", h.ListBookmarks)
	})

	// in a handler
	subject, ok := auth.SubjectFromContext(r.Context())

RequireSubject also stores the subject id in the logging context, so every
log line written with logging.Ctx carries "subject".
*/
package auth
