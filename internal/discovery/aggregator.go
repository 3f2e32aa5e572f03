// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package discovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/moim/internal/config"
	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/metrics"
	"github.com/tomtom215/moim/internal/models"
)

// ErrProviderUnavailable is returned for an unavailable outcome when the
// aggregator is configured to fail instead of degrading.
var ErrProviderUnavailable = errors.New("place provider unavailable")

// Search sizes sent to the provider.
const (
	PrimarySearchSize  = 15
	BackfillSearchSize = 5
)

// Defaults applied to zero-valued Options fields.
const (
	DefaultSize              = 10
	DefaultAllCategoriesSize = 5
	DefaultRadius            = 2000
)

// OutcomeStatus tells a caller why a list is empty or short.
type OutcomeStatus string

// Outcome statuses.
const (
	StatusComplete    OutcomeStatus = "complete"
	StatusPartial     OutcomeStatus = "partial"
	StatusUnavailable OutcomeStatus = "unavailable"
)

// Options controls one aggregation. Zero Size, Center and Radius fall back to
// the configured defaults. Thumbnails are attached unless SkipThumbnails is set.
type Options struct {
	Size           int
	SkipThumbnails bool
	Center         Center
	Radius         int
}

// Result is the output of an aggregation.
type Result struct {
	Venues   []models.Venue `json:"venues"`
	Status   OutcomeStatus  `json:"status"`
	Failures int            `json:"failures"`
}

// Aggregator runs the discovery pipeline.
type Aggregator struct {
	search     *PlaceSearch
	enricher   *Enricher
	resolver   *Resolver
	normalizer Normalizer
	cfg        config.DiscoveryConfig
}

// NewAggregator wires the pipeline stages. enricher may be nil, which
// disables thumbnails.
func NewAggregator(search *PlaceSearch, enricher *Enricher, resolver *Resolver, cfg config.DiscoveryConfig) *Aggregator {
	if cfg.DefaultSize <= 0 {
		cfg.DefaultSize = DefaultSize
	}
	if cfg.AllCategoriesSize <= 0 {
		cfg.AllCategoriesSize = DefaultAllCategoriesSize
	}
	if cfg.Radius <= 0 {
		cfg.Radius = DefaultRadius
	}
	if cfg.CenterX == 0 && cfg.CenterY == 0 {
		cfg.CenterX, cfg.CenterY = config.DefaultCenterX, config.DefaultCenterY
	}
	return &Aggregator{
		search:     search,
		enricher:   enricher,
		resolver:   resolver,
		normalizer: Normalizer{Resolver: resolver, DefaultNeighborhood: cfg.DefaultNeighborhood},
		cfg:        cfg,
	}
}

// DefaultOptions returns the configured defaults with Size left at zero so
// each entry point applies its own default.
func (a *Aggregator) DefaultOptions() Options {
	return Options{
		SkipThumbnails: !a.cfg.IncludeThumbnails,
		Center:         Center{X: a.cfg.CenterX, Y: a.cfg.CenterY},
		Radius:         a.cfg.Radius,
	}
}

// Resolver returns the category resolver.
func (a *Aggregator) Resolver() *Resolver { return a.resolver }

func (a *Aggregator) withDefaults(opts Options, size int) Options {
	if opts.Size <= 0 {
		opts.Size = size
	}
	if opts.Center == (Center{}) {
		opts.Center = Center{X: a.cfg.CenterX, Y: a.cfg.CenterY}
	}
	if opts.Radius <= 0 {
		opts.Radius = a.cfg.Radius
	}
	return opts
}

// ByCategory returns up to opts.Size admissible venues for tag.
// An unknown tag yields an empty complete result without network traffic.
func (a *Aggregator) ByCategory(ctx context.Context, tag models.Category, opts Options) (Result, error) {
	start := time.Now()
	opts = a.withDefaults(opts, a.cfg.DefaultSize)

	res := a.byCategory(ctx, tag, opts)

	label := string(tag)
	if _, known := a.resolver.Primary(tag); !known {
		label = "unknown"
	}
	metrics.RecordDiscovery(label, string(res.Status), len(res.Venues), time.Since(start))

	return a.finish(tag, res)
}

// AllCategories runs ByCategory for every category in declared order and
// concatenates the results. opts.Size applies per category.
func (a *Aggregator) AllCategories(ctx context.Context, opts Options) (Result, error) {
	start := time.Now()
	opts = a.withDefaults(opts, a.cfg.AllCategoriesSize)

	tags := a.resolver.Categories()
	results := make([]Result, len(tags))

	if a.cfg.ParallelCategories {
		var g errgroup.Group
		for i, tag := range tags {
			g.Go(func() error {
				results[i] = a.byCategory(ctx, tag, opts)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, tag := range tags {
			results[i] = a.byCategory(ctx, tag, opts)
		}
	}

	res := mergeResults(results)
	metrics.RecordDiscovery("all", string(res.Status), len(res.Venues), time.Since(start))

	return a.finish("all", res)
}

func (a *Aggregator) finish(label models.Category, res Result) (Result, error) {
	if res.Status == StatusUnavailable && a.cfg.FailOnUnavailable {
		return res, fmt.Errorf("%w: %s", ErrProviderUnavailable, label)
	}
	return res, nil
}

func (a *Aggregator) byCategory(ctx context.Context, tag models.Category, opts Options) Result {
	primary, ok := a.resolver.Primary(tag)
	if !ok {
		logging.Ctx(ctx).Debug().Str("category", string(tag)).Msg("Unknown category")
		return Result{Venues: []models.Venue{}, Status: StatusComplete}
	}

	seen := make(map[string]struct{}, PrimarySearchSize)
	collected := make([]models.RawPlace, 0, PrimarySearchSize)
	failures := 0

	first := a.search.Search(ctx, primary, opts.Center, opts.Radius, PrimarySearchSize)
	primaryFailed := first.Failed()
	if primaryFailed {
		failures++
		metrics.RecordSubqueryFailure("primary")
	}
	collected = appendUnique(collected, seen, first.Places)

	if len(collected) < opts.Size {
		for _, phrase := range a.resolver.Secondary(tag) {
			if len(collected) >= opts.Size || ctx.Err() != nil {
				break
			}
			more := a.search.Search(ctx, phrase, opts.Center, opts.Radius, BackfillSearchSize)
			if more.Failed() {
				failures++
				metrics.RecordSubqueryFailure("backfill")
			}
			collected = appendUnique(collected, seen, more.Places)
		}
	}

	if len(collected) > opts.Size {
		collected = collected[:opts.Size]
	}

	venues := make([]models.Venue, len(collected))
	for i, p := range collected {
		venues[i] = a.normalizer.Normalize(p, tag)
	}
	if !opts.SkipThumbnails && a.enricher != nil && len(venues) > 0 {
		venues = a.enricher.Enrich(ctx, venues, tag)
	}

	status := StatusComplete
	switch {
	case primaryFailed && len(venues) == 0:
		status = StatusUnavailable
	case failures > 0:
		status = StatusPartial
	}

	logging.Ctx(ctx).Debug().
		Str("category", string(tag)).
		Int("venues", len(venues)).
		Int("failures", failures).
		Str("status", string(status)).
		Msg("Category search complete")

	return Result{Venues: venues, Status: status, Failures: failures}
}

// appendUnique appends places whose provider id has not been seen.
func appendUnique(dst []models.RawPlace, seen map[string]struct{}, places []models.RawPlace) []models.RawPlace {
	for _, p := range places {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		dst = append(dst, p)
	}
	return dst
}

// mergeResults concatenates per-category results in order. The merged status
// is unavailable only when every category was unavailable.
func mergeResults(results []Result) Result {
	merged := Result{Venues: []models.Venue{}, Status: StatusComplete}
	unavailable := 0
	for _, r := range results {
		merged.Venues = append(merged.Venues, r.Venues...)
		merged.Failures += r.Failures
		switch r.Status {
		case StatusUnavailable:
			unavailable++
			merged.Status = StatusPartial
		case StatusPartial:
			merged.Status = StatusPartial
		}
	}
	if len(results) > 0 && unavailable == len(results) {
		merged.Status = StatusUnavailable
	}
	return merged
}
