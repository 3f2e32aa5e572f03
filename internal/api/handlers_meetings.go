// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/models"
)

// ListMeetings returns the caller's meetings, optionally filtered by
// ?status=upcoming|completed.
func (h *Handler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	q := MeetingsQuery{Status: strings.TrimSpace(r.URL.Query().Get("status"))}
	if !validateRequest(w, r, &q) {
		return
	}
	meetings, err := h.store.ListMeetings(r.Context(), subject.ID, models.MeetingStatus(q.Status))
	if err != nil {
		respondError(w, r, "Meeting", err)
		return
	}
	NewResponseWriter(w, r).Success(meetings)
}

// CreateMeeting schedules a meeting owned by the caller.
func (h *Handler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	var req CreateMeetingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	m, err := h.store.CreateMeeting(r.Context(), subject.ID, req.ToMeeting())
	if err != nil {
		respondError(w, r, "Meeting", err)
		return
	}
	logging.Ctx(r.Context()).Info().Str("meeting_id", m.ID).Msg("Meeting created")
	NewResponseWriter(w, r).Created(m)
}

// GetMeeting returns one meeting.
func (h *Handler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	if _, ok := subjectFrom(w, r); !ok {
		return
	}
	m, err := h.store.GetMeeting(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, "Meeting", err)
		return
	}
	NewResponseWriter(w, r).Success(m)
}

// UpdateMeeting applies a partial update. Only the owner may update.
func (h *Handler) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	var req UpdateMeetingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	m, err := h.store.UpdateMeeting(r.Context(), chi.URLParam(r, "id"), subject.ID, req.ToPatch())
	if err != nil {
		respondError(w, r, "Meeting", err)
		return
	}
	NewResponseWriter(w, r).Success(m)
}

// CompleteMeeting marks a meeting completed.
func (h *Handler) CompleteMeeting(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	m, err := h.store.CompleteMeeting(r.Context(), chi.URLParam(r, "id"), subject.ID)
	if err != nil {
		respondError(w, r, "Meeting", err)
		return
	}
	NewResponseWriter(w, r).Success(m)
}

// DeleteMeeting removes a meeting.
func (h *Handler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteMeeting(r.Context(), chi.URLParam(r, "id"), subject.ID); err != nil {
		respondError(w, r, "Meeting", err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}
