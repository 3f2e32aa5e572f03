// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package discovery

import (
	"context"

	"github.com/tomtom215/moim/internal/kakao"
	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/models"
)

// PlaceProvider runs keyword place searches.
type PlaceProvider interface {
	SearchKeyword(ctx context.Context, q kakao.KeywordQuery) ([]models.RawPlace, error)
}

// Center is a search origin.
type Center struct {
	X float64 // longitude
	Y float64 // latitude
}

// SearchResult is the admissible output of one provider call. On failure
// Places is empty and Err records the cause.
type SearchResult struct {
	Places []models.RawPlace
	Err    error
}

// Failed reports whether the provider call failed.
func (r SearchResult) Failed() bool { return r.Err != nil }

// PlaceSearch is a single filtered keyword search.
type PlaceSearch struct {
	provider PlaceProvider
	filter   *ContentFilter
}

// NewPlaceSearch creates a filtered search over provider.
func NewPlaceSearch(provider PlaceProvider, filter *ContentFilter) *PlaceSearch {
	return &PlaceSearch{provider: provider, filter: filter}
}

// Search issues one provider call and filters the result. It never returns
// an error; failures are reported in SearchResult.Err.
func (s *PlaceSearch) Search(ctx context.Context, phrase string, center Center, radius, size int) SearchResult {
	places, err := s.provider.SearchKeyword(ctx, kakao.KeywordQuery{
		Query:  phrase,
		X:      center.X,
		Y:      center.Y,
		Radius: radius,
		Size:   size,
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("phrase", phrase).Msg("Place search failed")
		return SearchResult{Places: []models.RawPlace{}, Err: err}
	}
	return SearchResult{Places: s.filter.Apply(ctx, places)}
}
