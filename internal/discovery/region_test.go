// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/moim/internal/cache"
	"github.com/tomtom215/moim/internal/models"
)

type fakeRegions struct {
	regions []models.Region
	err     error
	calls   int
}

func (f *fakeRegions) RegionCode(context.Context, float64, float64) ([]models.Region, error) {
	f.calls++
	return f.regions, f.err
}

func TestPickRegionLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		regions []models.Region
		want    string
		ok      bool
	}{
		{
			name: "administrative preferred",
			regions: []models.Region{
				{RegionType: "B", Region2DepthName: "강남구", Region3DepthName: "역삼동"},
				{RegionType: "H", Region2DepthName: "강남구", Region3DepthName: "역삼1동"},
			},
			want: "역삼1동", ok: true,
		},
		{
			name:    "first when no administrative region",
			regions: []models.Region{{RegionType: "B", Region3DepthName: "삼성동"}},
			want:    "삼성동", ok: true,
		},
		{
			name:    "district when no dong",
			regions: []models.Region{{RegionType: "H", Region2DepthName: "세종특별자치시"}},
			want:    "세종특별자치시", ok: true,
		},
		{name: "empty", regions: nil, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := pickRegionLabel(tt.regions)
			if got != tt.want || ok != tt.ok {
				t.Errorf("pickRegionLabel() = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRegionResolver_CachesSuccess(t *testing.T) {
	t.Parallel()

	provider := &fakeRegions{regions: []models.Region{{RegionType: "H", Region3DepthName: "서교동"}}}
	r := NewRegionResolver(provider, cache.NewStringLRU(10, 0))
	ctx := context.Background()

	if got := r.Label(ctx, 126.92001, 37.55501); got != "서교동" {
		t.Errorf("Label() = %q", got)
	}
	// Same 4-decimal cell.
	if got := r.Label(ctx, 126.92004, 37.55504); got != "서교동" {
		t.Errorf("Label() = %q", got)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls)
	}
}

func TestRegionResolver_FallbackNotCached(t *testing.T) {
	t.Parallel()

	provider := &fakeRegions{err: errors.New("timeout")}
	r := NewRegionResolver(provider, cache.NewStringLRU(10, 0))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if got := r.Label(ctx, 127, 37.5); got != FallbackRegionLabel {
			t.Errorf("Label() = %q, want fallback", got)
		}
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2", provider.calls)
	}

	provider.err = nil
	if got := r.Label(ctx, 127, 37.5); got != FallbackRegionLabel {
		t.Errorf("empty response Label() = %q, want fallback", got)
	}
}

func TestRegionResolver_NilCache(t *testing.T) {
	t.Parallel()

	provider := &fakeRegions{regions: []models.Region{{Region3DepthName: "역삼동"}}}
	r := NewRegionResolver(provider, nil)
	_ = r.Label(context.Background(), 127, 37.5)
	_ = r.Label(context.Background(), 127, 37.5)
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2 without a cache", provider.calls)
	}
}
