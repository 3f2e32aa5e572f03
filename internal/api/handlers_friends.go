// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ListFriends returns the caller's friends.
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	friends, err := h.store.ListFriends(r.Context(), subject.ID)
	if err != nil {
		respondError(w, r, "Friend", err)
		return
	}
	NewResponseWriter(w, r).Success(friends)
}

// ListFriendRequests returns pending requests addressed to the caller.
func (h *Handler) ListFriendRequests(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	reqs, err := h.store.ListPendingRequests(r.Context(), subject.ID)
	if err != nil {
		respondError(w, r, "Friend request", err)
		return
	}
	NewResponseWriter(w, r).Success(reqs)
}

// ListSentFriendRequests returns pending requests the caller sent.
func (h *Handler) ListSentFriendRequests(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	reqs, err := h.store.ListSentRequests(r.Context(), subject.ID)
	if err != nil {
		respondError(w, r, "Friend request", err)
		return
	}
	NewResponseWriter(w, r).Success(reqs)
}

// SendFriendRequest asks toUserId to become the caller's friend.
// 409 when already friends or a request is pending in either direction.
func (h *Handler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	var req FriendRequestBody
	if !decodeAndValidate(w, r, &req) {
		return
	}
	fr, err := h.store.SendFriendRequest(r.Context(), subject.ID, subject.DisplayName(), strings.TrimSpace(req.ToUserID))
	if err != nil {
		respondError(w, r, "Friend request", err)
		return
	}
	NewResponseWriter(w, r).Created(fr)
}

// AcceptFriendRequest accepts a pending request addressed to the caller.
func (h *Handler) AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	fr, err := h.store.AcceptFriendRequest(r.Context(), chi.URLParam(r, "id"), subject.ID, subject.DisplayName())
	if err != nil {
		respondError(w, r, "Friend request", err)
		return
	}
	NewResponseWriter(w, r).Success(fr)
}

// RejectFriendRequest rejects a pending request addressed to the caller.
func (h *Handler) RejectFriendRequest(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	fr, err := h.store.RejectFriendRequest(r.Context(), chi.URLParam(r, "id"), subject.ID)
	if err != nil {
		respondError(w, r, "Friend request", err)
		return
	}
	NewResponseWriter(w, r).Success(fr)
}

// RemoveFriend ends a friendship in both directions.
func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	if err := h.store.RemoveFriend(r.Context(), subject.ID, chi.URLParam(r, "friendID")); err != nil {
		respondError(w, r, "Friend", err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}
