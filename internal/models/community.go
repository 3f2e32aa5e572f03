// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package models

import "time"

// DefaultNickname is shown for authors without a nickname.
const DefaultNickname = "익명"

// Bookmark is a venue saved by a user.
type Bookmark struct {
	VenueID      string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Location     string    `json:"location"`
	URL          string    `json:"url"`
	Phone        string    `json:"phone"`
	Category     Category  `json:"category"`
	Icon         string    `json:"icon"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	BookmarkedAt time.Time `json:"bookmarkedAt"`
}

// BookmarkFromVenue copies the displayed venue fields into a bookmark.
func BookmarkFromVenue(v Venue) Bookmark {
	return Bookmark{
		VenueID:   v.ID,
		Name:      v.Name,
		Address:   v.Address,
		Location:  v.Location,
		URL:       v.URL,
		Phone:     v.Phone,
		Category:  v.Category,
		Icon:      v.Icon,
		Thumbnail: v.Thumbnail,
	}
}

// MeetingStatus is the lifecycle state of a meeting.
type MeetingStatus string

// Meeting statuses.
const (
	MeetingUpcoming  MeetingStatus = "upcoming"
	MeetingCompleted MeetingStatus = "completed"
)

// Valid reports whether s is a known status.
func (s MeetingStatus) Valid() bool {
	return s == MeetingUpcoming || s == MeetingCompleted
}

// Meeting is a meetup organized by a user.
type Meeting struct {
	ID              string        `json:"id"`
	OwnerID         string        `json:"ownerId"`
	Title           string        `json:"title"`
	Date            string        `json:"date"` // YYYY-MM-DD
	Time            string        `json:"time"` // HH:MM
	Place           string        `json:"place"`
	PlaceID         string        `json:"placeId,omitempty"`
	Description     string        `json:"description,omitempty"`
	Participants    int           `json:"participants"`
	MaxParticipants int           `json:"maxParticipants,omitempty"`
	Status          MeetingStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// MeetingPatch is a partial meeting update; nil fields are left unchanged.
type MeetingPatch struct {
	Title           *string `json:"title,omitempty"`
	Date            *string `json:"date,omitempty"`
	Time            *string `json:"time,omitempty"`
	Place           *string `json:"place,omitempty"`
	PlaceID         *string `json:"placeId,omitempty"`
	Description     *string `json:"description,omitempty"`
	Participants    *int    `json:"participants,omitempty"`
	MaxParticipants *int    `json:"maxParticipants,omitempty"`
}

// Apply copies the non-nil fields of p onto m.
func (p MeetingPatch) Apply(m *Meeting) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Time != nil {
		m.Time = *p.Time
	}
	if p.Place != nil {
		m.Place = *p.Place
	}
	if p.PlaceID != nil {
		m.PlaceID = *p.PlaceID
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Participants != nil {
		m.Participants = *p.Participants
	}
	if p.MaxParticipants != nil {
		m.MaxParticipants = *p.MaxParticipants
	}
}

// PostType is a community board category.
type PostType string

// Post types.
const (
	PostNew     PostType = "new"
	PostReview  PostType = "review"
	PostEvent   PostType = "event"
	PostGeneral PostType = "general"
)

var postTypeEmoji = map[PostType]string{
	PostNew:     "🆕",
	PostReview:  "💬",
	PostEvent:   "🎉",
	PostGeneral: "📝",
}

var postTypeName = map[PostType]string{
	PostNew:     "신규 오픈",
	PostReview:  "후기",
	PostEvent:   "이벤트",
	PostGeneral: "자유",
}

// PostTypes returns all post types in display order.
func PostTypes() []PostType {
	return []PostType{PostNew, PostReview, PostEvent, PostGeneral}
}

// Valid reports whether t is a known post type.
func (t PostType) Valid() bool {
	_, ok := postTypeName[t]
	return ok
}

// Emoji returns the display emoji for t.
func (t PostType) Emoji() string { return postTypeEmoji[t] }

// Label returns the Korean display name for t.
func (t PostType) Label() string { return postTypeName[t] }

// Post is a community board post.
type Post struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"authorId"`
	AuthorNickname string    `json:"authorNickname"`
	Type           PostType  `json:"type"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	LikesCount     int       `json:"likesCount"`
	CommentsCount  int       `json:"commentsCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// PostPatch is a partial post update; nil fields are left unchanged.
type PostPatch struct {
	Type     *PostType `json:"type,omitempty"`
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	ImageURL *string   `json:"imageUrl,omitempty"`
}

// Comment is a reply to a post.
type Comment struct {
	ID             string    `json:"id"`
	PostID         string    `json:"postId"`
	AuthorID       string    `json:"authorId"`
	AuthorNickname string    `json:"authorNickname"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PostDetail is a post with its comments, oldest first.
type PostDetail struct {
	Post
	Comments []Comment `json:"comments"`
}

// FriendRequestStatus is the state of a friend request.
type FriendRequestStatus string

// Friend request statuses.
const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest is a pending or resolved friend request.
type FriendRequest struct {
	ID           string              `json:"id"`
	FromUserID   string              `json:"fromUserId"`
	FromNickname string              `json:"fromNickname"`
	ToUserID     string              `json:"toUserId"`
	Status       FriendRequestStatus `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// Friend is one direction of an accepted friendship.
type Friend struct {
	UserID    string    `json:"userId"`
	FriendID  string    `json:"friendId"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
}
