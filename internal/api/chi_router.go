// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/moim/internal/middleware"
)

// slowRequestThreshold marks requests logged at warn by the access log.
const slowRequestThreshold = 2 * time.Second

// Authenticator wraps handlers that require an authenticated subject.
// *auth.Middleware implements it.
type Authenticator interface {
	RequireSubject(next http.Handler) http.Handler
}

// Router assembles the HTTP surface.
type Router struct {
	handler       *Handler
	auth          Authenticator
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router. A nil chiMiddleware uses the defaults.
func NewRouter(handler *Handler, authn Authenticator, chiMiddleware *ChiMiddleware) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		auth:          authn,
		chiMiddleware: chiMiddleware,
	}
}

// Setup configures all routes and returns the root handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, outermost first.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(slowRequestThreshold))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	h := router.handler

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	// Public discovery endpoints.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitPlaces())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/api/v1/places", h.Places)
		r.Get("/api/v1/places/categories", h.Categories)
		r.Get("/api/v1/location/region", h.Region)
	})

	// Community endpoints require a subject; mutations get a tighter limit.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.auth.RequireSubject)

		write := router.chiMiddleware.RateLimitWrite()

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", h.ListBookmarks)
			r.With(write).Post("/", h.AddBookmark)
			r.With(write).Delete("/{venueID}", h.RemoveBookmark)
			r.With(write).Post("/{venueID}/toggle", h.ToggleBookmark)
		})

		r.Route("/meetings", func(r chi.Router) {
			r.Get("/", h.ListMeetings)
			r.With(write).Post("/", h.CreateMeeting)
			r.Get("/{id}", h.GetMeeting)
			r.With(write).Put("/{id}", h.UpdateMeeting)
			r.With(write).Delete("/{id}", h.DeleteMeeting)
			r.With(write).Post("/{id}/complete", h.CompleteMeeting)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.ListPosts)
			r.With(write).Post("/", h.CreatePost)
			r.Get("/{id}", h.GetPost)
			r.With(write).Put("/{id}", h.UpdatePost)
			r.With(write).Delete("/{id}", h.DeletePost)
			r.With(write).Post("/{id}/comments", h.AddComment)
			r.With(write).Delete("/{id}/comments/{commentID}", h.DeleteComment)
			r.With(write).Post("/{id}/like", h.ToggleLike)
		})

		r.Route("/friends", func(r chi.Router) {
			r.Get("/", h.ListFriends)
			r.Get("/requests", h.ListFriendRequests)
			r.Get("/requests/sent", h.ListSentFriendRequests)
			r.With(write).Post("/requests", h.SendFriendRequest)
			r.With(write).Post("/requests/{id}/accept", h.AcceptFriendRequest)
			r.With(write).Post("/requests/{id}/reject", h.RejectFriendRequest)
			r.With(write).Delete("/{friendID}", h.RemoveFriend)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
