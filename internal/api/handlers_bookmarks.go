// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// BookmarkToggle is the payload of POST /api/v1/bookmarks/{venueID}/toggle.
type BookmarkToggle struct {
	VenueID    string `json:"id"`
	Bookmarked bool   `json:"bookmarked"`
}

// ListBookmarks returns the caller's bookmarks, newest first.
func (h *Handler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	bookmarks, err := h.store.ListBookmarks(r.Context(), subject.ID)
	if err != nil {
		respondError(w, r, "Bookmark", err)
		return
	}
	NewResponseWriter(w, r).Success(bookmarks)
}

// AddBookmark saves a venue. Saving an already bookmarked venue refreshes
// its snapshot and keeps the original timestamp.
func (h *Handler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	var req BookmarkRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	b, err := h.store.AddBookmark(r.Context(), subject.ID, req.ToBookmark())
	if err != nil {
		respondError(w, r, "Bookmark", err)
		return
	}
	NewResponseWriter(w, r).Created(b)
}

// RemoveBookmark deletes the caller's bookmark for venueID.
func (h *Handler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	if err := h.store.RemoveBookmark(r.Context(), subject.ID, chi.URLParam(r, "venueID")); err != nil {
		respondError(w, r, "Bookmark", err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// ToggleBookmark flips the bookmark state for venueID. The body carries the
// venue snapshot used when the toggle adds a bookmark; its id is taken from
// the path.
func (h *Handler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	var req BookmarkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "venueID")
	if !validateRequest(w, r, &req) {
		return
	}

	on, err := h.store.ToggleBookmark(r.Context(), subject.ID, req.ToBookmark())
	if err != nil {
		respondError(w, r, "Bookmark", err)
		return
	}
	NewResponseWriter(w, r).Success(BookmarkToggle{VenueID: req.ID, Bookmarked: on})
}
