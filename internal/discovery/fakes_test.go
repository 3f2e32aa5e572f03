// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tomtom215/moim/internal/kakao"
	"github.com/tomtom215/moim/internal/models"
)

var errProvider = errors.New("provider down")

// fakePlaces answers keyword searches from canned data. A "query/size" key
// takes precedence over a plain "query" key.
type fakePlaces struct {
	mu      sync.Mutex
	results map[string][]models.RawPlace
	errs    map[string]error
	calls   []kakao.KeywordQuery
}

func newFakePlaces() *fakePlaces {
	return &fakePlaces{
		results: make(map[string][]models.RawPlace),
		errs:    make(map[string]error),
	}
}

func (f *fakePlaces) on(query string, places ...models.RawPlace) *fakePlaces {
	f.results[query] = places
	return f
}

func (f *fakePlaces) fail(query string, err error) *fakePlaces {
	f.errs[query] = err
	return f
}

func (f *fakePlaces) SearchKeyword(_ context.Context, q kakao.KeywordQuery) ([]models.RawPlace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, q)

	sized := fmt.Sprintf("%s/%d", q.Query, q.Size)
	for _, key := range []string{sized, q.Query} {
		if err, ok := f.errs[key]; ok {
			return nil, err
		}
		if places, ok := f.results[key]; ok {
			return places, nil
		}
	}
	return []models.RawPlace{}, nil
}

func (f *fakePlaces) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = fmt.Sprintf("%s/%d", c.Query, c.Size)
	}
	return out
}

// fakeImages answers image searches and counts calls per query.
type fakeImages struct {
	mu     sync.Mutex
	thumbs map[string]string
	errs   map[string]error
	calls  map[string]int
}

func newFakeImages() *fakeImages {
	return &fakeImages{
		thumbs: make(map[string]string),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (f *fakeImages) SearchImage(_ context.Context, query string, _ int) ([]models.ImageDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[query]++
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	if url, ok := f.thumbs[query]; ok {
		return []models.ImageDocument{{ThumbnailURL: url}}, nil
	}
	return nil, nil
}

func (f *fakeImages) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeImages) count(query string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[query]
}

func place(id, name string) models.RawPlace {
	return models.RawPlace{
		ID:              id,
		PlaceName:       name,
		CategoryName:    "가정,생활 > 여가시설",
		AddressName:     "서울 강남구 역삼동 " + id,
		RoadAddressName: "서울 강남구 테헤란로 " + id,
		X:               "127.0276",
		Y:               "37.4979",
		PlaceURL:        "http://place.map.kakao.com/" + id,
		Distance:        "1346",
	}
}

func places(prefix string, n int) []models.RawPlace {
	out := make([]models.RawPlace, n)
	for i := range out {
		id := fmt.Sprintf("%s-%d", prefix, i)
		out[i] = place(id, "가게 "+id)
	}
	return out
}
