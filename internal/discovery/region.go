// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package discovery

import (
	"context"
	"fmt"

	"github.com/tomtom215/moim/internal/cache"
	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/metrics"
	"github.com/tomtom215/moim/internal/models"
)

// FallbackRegionLabel is shown when a coordinate cannot be resolved.
const FallbackRegionLabel = "현재 위치"

// RegionProvider resolves coordinates to regions.
type RegionProvider interface {
	RegionCode(ctx context.Context, lon, lat float64) ([]models.Region, error)
}

// RegionResolver turns a coordinate into a neighborhood label for the
// location header. Successful labels are cached per ~11 m grid cell.
type RegionResolver struct {
	provider RegionProvider
	cache    *cache.StringLRU
}

// NewRegionResolver creates a resolver. A nil cache disables caching.
func NewRegionResolver(provider RegionProvider, c *cache.StringLRU) *RegionResolver {
	return &RegionResolver{provider: provider, cache: c}
}

// Label returns the administrative dong for (lon, lat), or
// FallbackRegionLabel when the lookup fails.
func (r *RegionResolver) Label(ctx context.Context, lon, lat float64) string {
	key := regionKey(lon, lat)
	if r.cache != nil {
		if label, ok := r.cache.Peek(key); ok {
			metrics.RecordRegionLookup("hit")
			return label
		}
	}

	regions, err := r.provider.RegionCode(ctx, lon, lat)
	if err != nil {
		metrics.RecordRegionLookup("fallback")
		logging.Ctx(ctx).Warn().Err(err).Float64("x", lon).Float64("y", lat).Msg("Region lookup failed")
		return FallbackRegionLabel
	}
	label, ok := pickRegionLabel(regions)
	if !ok {
		metrics.RecordRegionLookup("fallback")
		logging.Ctx(ctx).Warn().Float64("x", lon).Float64("y", lat).Msg("Region lookup returned no regions")
		return FallbackRegionLabel
	}

	metrics.RecordRegionLookup("miss")
	if r.cache != nil {
		r.cache.Put(key, label)
	}
	return label
}

// pickRegionLabel prefers the administrative ("H") region, then the first one,
// and returns its 3rd depth name, else its 2nd.
func pickRegionLabel(regions []models.Region) (string, bool) {
	if len(regions) == 0 {
		return "", false
	}
	region := regions[0]
	for _, rg := range regions {
		if rg.RegionType == "H" {
			region = rg
			break
		}
	}
	switch {
	case region.Region3DepthName != "":
		return region.Region3DepthName, true
	case region.Region2DepthName != "":
		return region.Region2DepthName, true
	default:
		return "", false
	}
}

func regionKey(lon, lat float64) string {
	return fmt.Sprintf("%.4f,%.4f", lon, lat)
}
