// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package models

// RawPlace is one document from Kakao Local keyword search
// (GET /v2/local/search/keyword.json). Missing fields decode to "".
type RawPlace struct {
	ID                string `json:"id"`
	PlaceName         string `json:"place_name"`
	CategoryName      string `json:"category_name"` // e.g. "가정,생활 > 노래방 > 코인노래방"
	CategoryGroupCode string `json:"category_group_code"`
	CategoryGroupName string `json:"category_group_name"`
	Phone             string `json:"phone"`
	AddressName       string `json:"address_name"`      // lot-number address
	RoadAddressName   string `json:"road_address_name"` // road-name address
	X                 string `json:"x"`                 // longitude
	Y                 string `json:"y"`                 // latitude
	PlaceURL          string `json:"place_url"`
	Distance          string `json:"distance"` // meters from the search center, "" without x/y
}

// SearchMeta is the "meta" block of Kakao search responses.
type SearchMeta struct {
	TotalCount    int  `json:"total_count"`
	PageableCount int  `json:"pageable_count"`
	IsEnd         bool `json:"is_end"`
}

// KeywordSearchResponse is the body of a keyword search.
type KeywordSearchResponse struct {
	Meta      SearchMeta `json:"meta"`
	Documents []RawPlace `json:"documents"`
}

// ImageDocument is one document from Kakao image search (GET /v2/search/image).
type ImageDocument struct {
	Collection      string `json:"collection"`
	ThumbnailURL    string `json:"thumbnail_url"`
	ImageURL        string `json:"image_url"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	DisplaySitename string `json:"display_sitename"`
	DocURL          string `json:"doc_url"`
	Datetime        string `json:"datetime"`
}

// ImageSearchResponse is the body of an image search.
type ImageSearchResponse struct {
	Meta      SearchMeta      `json:"meta"`
	Documents []ImageDocument `json:"documents"`
}

// Region is one document from coord2regioncode.
type Region struct {
	RegionType       string  `json:"region_type"` // "B" (legal) or "H" (administrative)
	AddressName      string  `json:"address_name"`
	Region1DepthName string  `json:"region_1depth_name"`
	Region2DepthName string  `json:"region_2depth_name"`
	Region3DepthName string  `json:"region_3depth_name"`
	Region4DepthName string  `json:"region_4depth_name"`
	Code             string  `json:"code"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
}

// RegionMeta is the "meta" block of a coord2regioncode response.
type RegionMeta struct {
	TotalCount int `json:"total_count"`
}

// RegionResponse is the body of a coord2regioncode call.
type RegionResponse struct {
	Meta      RegionMeta `json:"meta"`
	Documents []Region   `json:"documents"`
}
