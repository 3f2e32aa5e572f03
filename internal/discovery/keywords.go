// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package discovery

import (
	"strings"

	"github.com/tomtom215/moim/internal/models"
)

// DefaultIcon is shown for venues of an unknown category.
const DefaultIcon = "📍"

const defaultThumbnailBase = "https://search1.kakaocdn.net/argon/130x130_85_c/"

type categoryDef struct {
	tag       models.Category
	primary   string
	secondary []string
	icon      string
	thumbID   string
}

// categoryTable is in display order; AllCategories follows it.
var categoryTable = []categoryDef{
	{tag: models.CategoryKaraoke, primary: "코인노래방", icon: "🎤", thumbID: "Kp2KXLzRwOd"},
	{tag: models.CategoryEscape, primary: "방탈출카페", icon: "🎯", thumbID: "IxxsexaSwPv"},
	{tag: models.CategoryBoard, primary: "보드게임카페", secondary: []string{"보드게임카페", "보드게임방"}, icon: "🎲", thumbID: "E6HRx1AqOPY"},
	{tag: models.CategoryMovie, primary: "영화관", icon: "🎬", thumbID: "36hQpoTrVZp"},
	{tag: models.CategoryCafe, primary: "북카페", secondary: []string{"북카페", "스터디카페"}, icon: "📚", thumbID: "E6HRx1AqOPY"},
}

// Resolver maps category tags to search phrases, icons and default thumbnails.
// It is immutable and safe for concurrent use.
type Resolver struct {
	defs  []categoryDef
	byTag map[models.Category]int
}

// NewResolver returns a resolver over the built-in category table.
func NewResolver() *Resolver {
	r := &Resolver{
		defs:  categoryTable,
		byTag: make(map[models.Category]int, len(categoryTable)),
	}
	for i, d := range categoryTable {
		r.byTag[d.tag] = i
	}
	return r
}

func (r *Resolver) lookup(tag models.Category) (categoryDef, bool) {
	i, ok := r.byTag[tag]
	if !ok {
		return categoryDef{}, false
	}
	return r.defs[i], true
}

// Primary returns the primary search phrase for tag.
func (r *Resolver) Primary(tag models.Category) (string, bool) {
	d, ok := r.lookup(tag)
	if !ok {
		return "", false
	}
	return d.primary, true
}

// Secondary returns the backfill phrases for tag in declared order, or nil.
func (r *Resolver) Secondary(tag models.Category) []string {
	d, ok := r.lookup(tag)
	if !ok || len(d.secondary) == 0 {
		return nil
	}
	out := make([]string, len(d.secondary))
	copy(out, d.secondary)
	return out
}

// Categories returns every tag in declared order.
func (r *Resolver) Categories() []models.Category {
	out := make([]models.Category, len(r.defs))
	for i, d := range r.defs {
		out[i] = d.tag
	}
	return out
}

// Icon returns the emoji for tag, or DefaultIcon.
func (r *Resolver) Icon(tag models.Category) string {
	if d, ok := r.lookup(tag); ok {
		return d.icon
	}
	return DefaultIcon
}

// DefaultThumbnail returns the fallback thumbnail URL for tag, or "".
func (r *Resolver) DefaultThumbnail(tag models.Category) string {
	if d, ok := r.lookup(tag); ok {
		return defaultThumbnailBase + d.thumbID
	}
	return ""
}

// Infos describes every category for the categories endpoint.
func (r *Resolver) Infos() []models.CategoryInfo {
	out := make([]models.CategoryInfo, len(r.defs))
	for i, d := range r.defs {
		out[i] = models.CategoryInfo{Tag: d.tag, Icon: d.icon, Keyword: d.primary}
	}
	return out
}

// ParseCategory parses a tag case-insensitively.
func ParseCategory(s string) (models.Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range categoryTable {
		if string(d.tag) == s {
			return d.tag, true
		}
	}
	return "", false
}
