// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package discovery

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/metrics"
	"github.com/tomtom215/moim/internal/models"
)

// DefaultThumbnailConcurrency bounds concurrent image searches per batch.
const DefaultThumbnailConcurrency = 8

// sharedLookupTimeout bounds an image search that is shared between callers
// and so no longer follows any single caller's context.
const sharedLookupTimeout = 10 * time.Second

// ImageProvider runs image searches.
type ImageProvider interface {
	SearchImage(ctx context.Context, query string, size int) ([]models.ImageDocument, error)
}

// ThumbnailCache maps a venue name to a thumbnail URL. An empty value records
// that the provider had no image. Implementations must be safe for concurrent use.
type ThumbnailCache interface {
	Get(ctx context.Context, name string) (url string, ok bool, err error)
	Set(ctx context.Context, name, url string) error
}

// Enricher attaches thumbnails to venues.
type Enricher struct {
	images      ImageProvider
	cache       ThumbnailCache
	resolver    *Resolver
	concurrency int
	group       singleflight.Group
}

// NewEnricher creates an enricher. concurrency <= 0 means unlimited.
func NewEnricher(images ImageProvider, cache ThumbnailCache, resolver *Resolver, concurrency int) *Enricher {
	return &Enricher{
		images:      images,
		cache:       cache,
		resolver:    resolver,
		concurrency: concurrency,
	}
}

// Enrich returns copies of venues with Thumbnail set. Output order equals
// input order. Venues without an image get the category default.
func (e *Enricher) Enrich(ctx context.Context, venues []models.Venue, tag models.Category) []models.Venue {
	out := make([]models.Venue, len(venues))
	fallback := e.resolver.DefaultThumbnail(tag)

	var g errgroup.Group
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}
	for i, v := range venues {
		g.Go(func() error {
			url, _ := e.Lookup(ctx, v.Name)
			if url == "" {
				url = fallback
			}
			out[i] = v.WithThumbnail(url)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// Lookup resolves the thumbnail for a venue name. ok is false when the image
// search failed; failures are not cached. A found-but-empty result returns
// ("", true).
func (e *Enricher) Lookup(ctx context.Context, name string) (url string, ok bool) {
	if e.cache != nil {
		cached, hit, err := e.cache.Get(ctx, name)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("venue", name).Msg("Thumbnail cache read failed")
		} else if hit {
			metrics.RecordThumbnailCache(true)
			logging.Ctx(ctx).Debug().Str("venue", name).Msg("Thumbnail cache hit")
			return cached, true
		}
	}
	metrics.RecordThumbnailCache(false)

	// Concurrent lookups of one name share a single search. The search runs
	// detached from the first caller so one cancelled request cannot fail
	// the others; each caller still stops waiting when its own ctx ends.
	ch := e.group.DoChan(name, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()
		return e.fetch(fctx, name)
	})

	select {
	case <-ctx.Done():
		logging.Ctx(ctx).Debug().Err(ctx.Err()).Str("venue", name).Msg("Thumbnail lookup abandoned")
		return "", false
	case res := <-ch:
		if res.Err != nil {
			metrics.RecordThumbnailLookupError()
			logging.Ctx(ctx).Warn().Err(res.Err).Str("venue", name).Msg("Image search failed")
			return "", false
		}
		return res.Val.(string), true
	}
}

func (e *Enricher) fetch(ctx context.Context, name string) (string, error) {
	docs, err := e.images.SearchImage(ctx, name, 1)
	if err != nil {
		return "", err
	}

	var url string
	if len(docs) > 0 {
		url = docs[0].ThumbnailURL
	}
	if e.cache != nil {
		if err := e.cache.Set(ctx, name, url); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("venue", name).Msg("Thumbnail cache write failed")
		}
	}
	logging.Ctx(ctx).Debug().Str("venue", name).Bool("found", url != "").Msg("Thumbnail cached")
	return url, nil
}
