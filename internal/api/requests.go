// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package api

import (
	"strings"

	"github.com/tomtom215/moim/internal/models"
)

// PlacesQuery holds validated query parameters for GET /api/v1/places.
type PlacesQuery struct {
	Category   string   `json:"category" validate:"omitempty,max=32"`
	Size       int      `json:"size" validate:"omitempty,min=1,max=45"`
	X          *float64 `json:"x" validate:"required_with=Y,omitempty,longitude"`
	Y          *float64 `json:"y" validate:"required_with=X,omitempty,latitude"`
	Radius     int      `json:"radius" validate:"omitempty,min=1,max=20000"`
	Thumbnails *bool    `json:"thumbnails"`
}

// RegionQuery holds validated query parameters for GET /api/v1/location/region.
type RegionQuery struct {
	X *float64 `json:"x" validate:"required,longitude"`
	Y *float64 `json:"y" validate:"required,latitude"`
}

// BookmarkRequest is the body of POST /api/v1/bookmarks and the toggle
// endpoint. It carries the venue snapshot shown in the bookmark list.
type BookmarkRequest struct {
	ID        string `json:"id" validate:"required,notblank,max=64"`
	Name      string `json:"name" validate:"required,notblank,max=200"`
	Address   string `json:"address" validate:"max=300"`
	Location  string `json:"location" validate:"max=100"`
	URL       string `json:"url" validate:"omitempty,url,max=500"`
	Phone     string `json:"phone" validate:"max=40"`
	Category  string `json:"category" validate:"max=32"`
	Icon      string `json:"icon" validate:"max=16"`
	Thumbnail string `json:"thumbnail" validate:"omitempty,url,max=500"`
}

// ToBookmark converts the request into a bookmark.
func (b *BookmarkRequest) ToBookmark() models.Bookmark {
	return models.Bookmark{
		VenueID:   strings.TrimSpace(b.ID),
		Name:      strings.TrimSpace(b.Name),
		Address:   b.Address,
		Location:  b.Location,
		URL:       b.URL,
		Phone:     b.Phone,
		Category:  models.Category(b.Category),
		Icon:      b.Icon,
		Thumbnail: b.Thumbnail,
	}
}

// MeetingsQuery holds query parameters for GET /api/v1/meetings.
type MeetingsQuery struct {
	Status string `json:"status" validate:"omitempty,meeting_status"`
}

// CreateMeetingRequest is the body of POST /api/v1/meetings.
type CreateMeetingRequest struct {
	Title           string `json:"title" validate:"required,notblank,max=100"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string `json:"time" validate:"required,datetime=15:04"`
	Place           string `json:"place" validate:"required,notblank,max=200"`
	PlaceID         string `json:"placeId" validate:"max=64"`
	Description     string `json:"description" validate:"max=1000"`
	MaxParticipants int    `json:"maxParticipants" validate:"omitempty,min=2,max=100"`
}

// ToMeeting converts the request into a meeting draft.
func (m *CreateMeetingRequest) ToMeeting() models.Meeting {
	return models.Meeting{
		Title:           strings.TrimSpace(m.Title),
		Date:            m.Date,
		Time:            m.Time,
		Place:           strings.TrimSpace(m.Place),
		PlaceID:         m.PlaceID,
		Description:     m.Description,
		MaxParticipants: m.MaxParticipants,
	}
}

// UpdateMeetingRequest is the body of PUT /api/v1/meetings/{id}.
// Omitted fields are left unchanged.
type UpdateMeetingRequest struct {
	Title           *string `json:"title" validate:"omitempty,notblank,max=100"`
	Date            *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time            *string `json:"time" validate:"omitempty,datetime=15:04"`
	Place           *string `json:"place" validate:"omitempty,notblank,max=200"`
	PlaceID         *string `json:"placeId" validate:"omitempty,max=64"`
	Description     *string `json:"description" validate:"omitempty,max=1000"`
	Participants    *int    `json:"participants" validate:"omitempty,min=1,max=100"`
	MaxParticipants *int    `json:"maxParticipants" validate:"omitempty,min=2,max=100"`
}

// ToPatch converts the request into a meeting patch.
func (m *UpdateMeetingRequest) ToPatch() models.MeetingPatch {
	return models.MeetingPatch{
		Title:           m.Title,
		Date:            m.Date,
		Time:            m.Time,
		Place:           m.Place,
		PlaceID:         m.PlaceID,
		Description:     m.Description,
		Participants:    m.Participants,
		MaxParticipants: m.MaxParticipants,
	}
}

// PostsQuery holds query parameters for GET /api/v1/posts.
type PostsQuery struct {
	Type   string `json:"type" validate:"omitempty,post_type"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `json:"offset" validate:"omitempty,min=0"`
}

// CreatePostRequest is the body of POST /api/v1/posts.
type CreatePostRequest struct {
	Type     string `json:"type" validate:"omitempty,post_type"`
	Title    string `json:"title" validate:"required,notblank,max=100"`
	Content  string `json:"content" validate:"required,notblank,max=5000"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url,max=500"`
}

// ToPost converts the request into a post draft.
func (p *CreatePostRequest) ToPost() models.Post {
	return models.Post{
		Type:     models.PostType(p.Type),
		Title:    strings.TrimSpace(p.Title),
		Content:  p.Content,
		ImageURL: p.ImageURL,
	}
}

// UpdatePostRequest is the body of PUT /api/v1/posts/{id}.
type UpdatePostRequest struct {
	Type     *string `json:"type" validate:"omitempty,post_type"`
	Title    *string `json:"title" validate:"omitempty,notblank,max=100"`
	Content  *string `json:"content" validate:"omitempty,notblank,max=5000"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,max=500"`
}

// ToPatch converts the request into a post patch.
func (p *UpdatePostRequest) ToPatch() models.PostPatch {
	patch := models.PostPatch{
		Title:    p.Title,
		Content:  p.Content,
		ImageURL: p.ImageURL,
	}
	if p.Type != nil {
		t := models.PostType(*p.Type)
		patch.Type = &t
	}
	return patch
}

// CommentRequest is the body of POST /api/v1/posts/{id}/comments.
type CommentRequest struct {
	Content string `json:"content" validate:"required,notblank,max=1000"`
}

// FriendRequestBody is the body of POST /api/v1/friends/requests.
type FriendRequestBody struct {
	ToUserID string `json:"toUserId" validate:"required,notblank,max=128"`
}
