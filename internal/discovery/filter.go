// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package discovery

import (
	"context"

	"github.com/tomtom215/moim/internal/cache"
	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/metrics"
	"github.com/tomtom215/moim/internal/models"
)

// DefaultNameRules exclude venues whose display name contains any entry.
var DefaultNameRules = []string{
	// alcohol
	"주점", "술집", "바", "호프", "이자카야", "포차", "선술집",
	"맥주", "소주", "와인바", "칵테일", "펍", "pub", "bar",
	// nightlife
	"클럽", "나이트", "룸살롱", "단란주점", "유흥", "라운지",
	// adult
	"성인", "19금", "19세", "어덜트", "adult",
	// gambling
	"카지노", "도박", "베팅",
	// tobacco
	"담배", "시가", "전자담배",
}

// DefaultCategoryRules exclude venues whose provider category contains any entry.
var DefaultCategoryRules = []string{
	"술집", "호프", "요리주점", "나이트클럽", "유흥주점",
	"단란주점", "와인바", "칵테일바", "룸카페", "성인용품",
}

// Filter fields reported in a Verdict.
const (
	FieldName     = "name"
	FieldCategory = "category"
)

// Verdict is the result of checking one venue.
type Verdict struct {
	Admissible bool
	Field      string // FieldName or FieldCategory when excluded
	Rule       string // matched rule as declared
}

// ContentFilter excludes venues unsuitable for teenagers.
// It is immutable and safe for concurrent use. A nil filter admits nothing.
type ContentFilter struct {
	nameRules     []string
	categoryRules []string
	names         *cache.AhoCorasick
	categories    *cache.AhoCorasick
}

// NewContentFilter compiles the rule lists. An empty list selects the defaults.
func NewContentFilter(nameRules, categoryRules []string) *ContentFilter {
	if len(nameRules) == 0 {
		nameRules = DefaultNameRules
	}
	if len(categoryRules) == 0 {
		categoryRules = DefaultCategoryRules
	}
	f := &ContentFilter{
		nameRules:     append([]string(nil), nameRules...),
		categoryRules: append([]string(nil), categoryRules...),
	}
	f.names = cache.NewAhoCorasick(f.nameRules)
	f.categories = cache.NewAhoCorasick(f.categoryRules)
	return f
}

// Check evaluates p against the name rules, then the category rules.
func (f *ContentFilter) Check(p models.RawPlace) Verdict {
	if f == nil {
		return Verdict{Admissible: false}
	}
	if m, ok := f.names.Earliest(p.PlaceName); ok {
		return Verdict{Field: FieldName, Rule: f.nameRules[m.Index]}
	}
	if m, ok := f.categories.Earliest(p.CategoryName); ok {
		return Verdict{Field: FieldCategory, Rule: f.categoryRules[m.Index]}
	}
	return Verdict{Admissible: true}
}

// IsAdmissible reports whether p may be shown, logging and counting exclusions.
func (f *ContentFilter) IsAdmissible(ctx context.Context, p models.RawPlace) bool {
	v := f.Check(p)
	if v.Admissible {
		return true
	}
	if v.Field != "" {
		metrics.RecordFiltered(v.Field)
	}
	logging.Ctx(ctx).Debug().
		Str("venue", p.PlaceName).
		Str("field", v.Field).
		Str("rule", v.Rule).
		Msg("Venue excluded by content filter")
	return false
}

// Apply returns the admissible subset of places, preserving order.
func (f *ContentFilter) Apply(ctx context.Context, places []models.RawPlace) []models.RawPlace {
	out := make([]models.RawPlace, 0, len(places))
	for _, p := range places {
		if f.IsAdmissible(ctx, p) {
			out = append(out, p)
		}
	}
	return out
}

// Rules returns copies of the active name and category rules.
func (f *ContentFilter) Rules() (names, categories []string) {
	if f == nil {
		return nil, nil
	}
	return append([]string(nil), f.nameRules...), append([]string(nil), f.categoryRules...)
}
