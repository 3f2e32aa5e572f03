// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/moim/internal/api"
	"github.com/tomtom215/moim/internal/auth"
	"github.com/tomtom215/moim/internal/cache"
	"github.com/tomtom215/moim/internal/config"
	"github.com/tomtom215/moim/internal/discovery"
	"github.com/tomtom215/moim/internal/kakao"
	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/store"
	"github.com/tomtom215/moim/internal/supervisor/services"
)

// app holds the long-lived components built from configuration.
type app struct {
	handler     http.Handler
	provider    *kakao.CircuitBreakerClient
	caches      *cache.Caches
	store       *store.Store
	maintenance *services.MaintenanceService
}

// Close releases the store and cache connections.
func (a *app) Close() error {
	var errs []error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	if a.caches != nil {
		if err := a.caches.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close caches: %w", err))
		}
	}
	return errors.Join(errs...)
}

// buildApp wires the Kakao client, discovery pipeline, community store and
// HTTP router. kakaoOpts are passed to the Kakao client.
func buildApp(ctx context.Context, cfg *config.Config, kakaoOpts ...kakao.ClientOption) (*app, error) {
	provider := kakao.NewCircuitBreakerClient(&cfg.Kakao, kakaoOpts...)

	caches, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("open caches: %w", err)
	}
	a := &app{provider: provider, caches: caches}

	aggregator, regions := buildPipeline(cfg, provider, caches)

	a.store, err = store.Open(cfg.Store)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	authMiddleware, err := auth.NewMiddleware(&cfg.Security)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("create auth middleware: %w", err)
	}

	handler := api.NewHandler(api.HandlerDeps{
		Places:   aggregator,
		Regions:  regions,
		Store:    a.store,
		Provider: provider,
	})
	chiMiddleware := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	a.handler = api.NewRouter(handler, authMiddleware, chiMiddleware).Setup()

	local := caches.Local()
	expiring := make(map[string]services.ExpiringCache, len(local))
	for name, c := range local {
		expiring[name] = c
	}
	a.maintenance = services.NewMaintenanceService(expiring, a.store, cfg.Cache.JanitorInterval)

	return a, nil
}

// buildPipeline assembles search, enrichment and aggregation over provider.
func buildPipeline(cfg *config.Config, provider kakao.API, caches *cache.Caches) (*discovery.Aggregator, *discovery.RegionResolver) {
	filter := discovery.NewContentFilter(cfg.Discovery.BlacklistNames, cfg.Discovery.BlacklistCategories)
	nameRules, categoryRules := filter.Rules()
	logging.Debug().
		Int("name_rules", len(nameRules)).
		Int("category_rules", len(categoryRules)).
		Msg("Content filter compiled")

	resolver := discovery.NewResolver()
	search := discovery.NewPlaceSearch(provider, filter)
	enricher := discovery.NewEnricher(provider, caches.Thumbnails, resolver, cfg.Discovery.ThumbnailConcurrency)

	aggregator := discovery.NewAggregator(search, enricher, resolver, cfg.Discovery)
	regions := discovery.NewRegionResolver(provider, caches.Regions)
	return aggregator, regions
}
