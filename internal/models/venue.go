// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package models

// Category is a venue category tag.
type Category string

// Category tags, in display order.
const (
	CategoryKaraoke Category = "karaoke"
	CategoryEscape  Category = "escape"
	CategoryBoard   Category = "board"
	CategoryMovie   Category = "movie"
	CategoryCafe    Category = "cafe"
)

// Venue is a normalized venue that passed the content filter.
type Venue struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       Category `json:"category"`
	Location       string   `json:"location"` // neighborhood label, e.g. 역삼동
	Address        string   `json:"address"`
	Phone          string   `json:"phone"`
	Distance       string   `json:"distance"` // e.g. 1.3km
	Icon           string   `json:"icon"`
	Thumbnail      string   `json:"thumbnail,omitempty"`
	URL            string   `json:"url"`
	X              float64  `json:"x"`
	Y              float64  `json:"y"`
	CategoryDetail string   `json:"categoryDetail"`
}

// WithThumbnail returns a copy of v with Thumbnail set.
func (v Venue) WithThumbnail(url string) Venue {
	v.Thumbnail = url
	return v
}

// CategoryInfo describes a category for the categories endpoint.
type CategoryInfo struct {
	Tag     Category `json:"tag"`
	Icon    string   `json:"icon"`
	Keyword string   `json:"keyword"`
}
