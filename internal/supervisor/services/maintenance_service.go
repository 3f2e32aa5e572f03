// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package services

import (
	"context"
	"sort"
	"time"

	"github.com/tomtom215/moim/internal/cache"
	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/metrics"
)

// DefaultMaintenanceInterval is used when the configured interval is not
// positive.
const DefaultMaintenanceInterval = 10 * time.Minute

// ExpiringCache is an in-process cache with TTL sweeps. *cache.StringLRU
// implements it.
type ExpiringCache interface {
	CleanupExpired() int
	Stats() cache.Stats
}

// ValueLogCollector reclaims store space. *store.Store implements it.
type ValueLogCollector interface {
	RunGC() (bool, error)
}

// MaintenanceService periodically sweeps caches and collects the store's
// value log.
type MaintenanceService struct {
	caches        map[string]ExpiringCache
	names         []string
	store         ValueLogCollector
	interval      time.Duration
	lastEvictions map[string]int64
}

// NewMaintenanceService creates the service. store may be nil.
func NewMaintenanceService(caches map[string]ExpiringCache, store ValueLogCollector, interval time.Duration) *MaintenanceService {
	if interval <= 0 {
		interval = DefaultMaintenanceInterval
	}
	names := make([]string, 0, len(caches))
	for name := range caches {
		names = append(names, name)
	}
	sort.Strings(names)
	return &MaintenanceService{
		caches:        caches,
		names:         names,
		store:         store,
		interval:      interval,
		lastEvictions: make(map[string]int64, len(caches)),
	}
}

// Serve implements suture.Service.
func (m *MaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.RunOnce(ctx)
		}
	}
}

// RunOnce performs one maintenance pass. Serve calls it on every tick.
func (m *MaintenanceService) RunOnce(ctx context.Context) {
	log := logging.Ctx(ctx)

	for _, name := range m.names {
		c := m.caches[name]
		expired := c.CleanupExpired()
		stats := c.Stats()

		metrics.RecordCacheEvictions(name, "expired", expired)
		if delta := stats.Evictions - m.lastEvictions[name]; delta > 0 {
			metrics.RecordCacheEvictions(name, "capacity", int(delta))
		}
		m.lastEvictions[name] = stats.Evictions
		metrics.SetCacheEntries(name, stats.Size)

		log.Debug().
			Str("cache", name).
			Int("expired", expired).
			Int("size", stats.Size).
			Float64("hit_rate", stats.HitRate()).
			Msg("Cache sweep complete")
	}

	if m.store == nil {
		return
	}
	rewritten, err := m.store.RunGC()
	if err != nil {
		log.Warn().Err(err).Msg("Store value log GC failed")
		return
	}
	if rewritten {
		log.Info().Msg("Store value log GC reclaimed space")
	}
}

// String implements fmt.Stringer.
func (m *MaintenanceService) String() string {
	return "maintenance"
}
