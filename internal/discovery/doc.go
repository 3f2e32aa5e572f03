// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

/*
Package discovery turns a category tag and a location into a youth-filtered,
thumbnail-enriched list of nearby venues.

# Pipeline

	Aggregator.ByCategory(ctx, tag, opts)
	  |- Resolver       tag -> primary phrase (+ secondary phrases for backfill)
	  |- PlaceSearch    one Kakao keyword search per phrase, then ContentFilter
	  |- dedupe by provider id, truncate to opts.Size
	  |- Normalize      raw place -> models.Venue (neighborhood, distance, icon)
	  `- Enricher       thumbnail per venue name, cached, bounded fan-out

AllCategories runs ByCategory for every tag in declared order and concatenates
the results without cross-category deduplication.

# Content Filter

Two ordered rule lists (venue name keywords, provider category keywords) are
compiled into Aho-Corasick automata. Name rules are checked first; the reported
rule is the earliest declared one that matches. Every venue leaving the
pipeline has passed the filter.

# Failure Handling

A failed sub-query yields an empty SearchResult with Err set, never a panic or
an aborted aggregate. The Result carries an OutcomeStatus so callers can tell
"no admissible venues" (complete, empty) from "provider down" (unavailable).
With DISCOVERY_FAIL_ON_UNAVAILABLE=true an unavailable outcome is returned as
ErrProviderUnavailable instead.

# Concurrency

Thumbnail lookups fan out through errgroup with SetLimit, and concurrent
lookups of the same name are collapsed with singleflight. Categories run
sequentially unless DISCOVERY_PARALLEL_CATEGORIES is set; order is preserved
either way.
*/
package discovery
