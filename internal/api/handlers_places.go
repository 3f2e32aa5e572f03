// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/moim/internal/discovery"
	"github.com/tomtom215/moim/internal/models"
)

// RegionLabel is the payload of GET /api/v1/location/region.
type RegionLabel struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Places lists venues for one category, or a mix of every category when
// category is omitted.
//
// Query parameters:
//
//	category    karaoke | escape | board | movie | cafe (optional)
//	size        1..45 (default 10 for one category, 5 per category for all)
//	x, y        search center longitude/latitude (both or neither)
//	radius      meters, 1..20000
//	thumbnails  true | false
//
// meta.status is complete, partial or unavailable. An unknown category
// yields an empty complete list.
func (h *Handler) Places(w http.ResponseWriter, r *http.Request) {
	q, ok := parsePlacesQuery(w, r)
	if !ok {
		return
	}

	opts := h.places.DefaultOptions()
	opts.Size = q.Size
	opts.Radius = q.Radius
	if q.X != nil && q.Y != nil {
		opts.Center = discovery.Center{X: *q.X, Y: *q.Y}
	}
	if q.Thumbnails != nil {
		opts.SkipThumbnails = !*q.Thumbnails
	}

	var (
		res discovery.Result
		err error
	)
	if q.Category == "" {
		res, err = h.places.AllCategories(r.Context(), opts)
	} else {
		tag, _ := discovery.ParseCategory(q.Category)
		res, err = h.places.ByCategory(r.Context(), tag, opts)
	}
	if err != nil {
		respondError(w, r, "Places", err)
		return
	}

	venues := res.Venues
	if venues == nil {
		venues = []models.Venue{}
	}
	NewResponseWriter(w, r).SuccessWithMeta(venues, &APIMeta{
		Status:   string(res.Status),
		Failures: res.Failures,
	})
}

func parsePlacesQuery(w http.ResponseWriter, r *http.Request) (PlacesQuery, bool) {
	q := PlacesQuery{Category: strings.TrimSpace(r.URL.Query().Get("category"))}
	var err error
	if q.Size, err = getIntParam(r, "size"); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return q, false
	}
	if q.Radius, err = getIntParam(r, "radius"); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return q, false
	}
	if q.X, err = getFloatParam(r, "x"); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return q, false
	}
	if q.Y, err = getFloatParam(r, "y"); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return q, false
	}
	if q.Thumbnails, err = getBoolParam(r, "thumbnails"); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return q, false
	}
	return q, validateRequest(w, r, &q)
}

// Categories lists the supported category tags with icon and primary search
// phrase.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.places.Resolver().Infos())
}

// Region resolves x/y to a neighborhood label. Provider failures degrade to
// a generic label instead of an error.
func (h *Handler) Region(w http.ResponseWriter, r *http.Request) {
	var (
		q   RegionQuery
		err error
	)
	if q.X, err = getFloatParam(r, "x"); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	if q.Y, err = getFloatParam(r, "y"); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	if !validateRequest(w, r, &q) {
		return
	}

	NewResponseWriter(w, r).Success(RegionLabel{
		Label: h.regions.Label(r.Context(), *q.X, *q.Y),
		X:     *q.X,
		Y:     *q.Y,
	})
}
