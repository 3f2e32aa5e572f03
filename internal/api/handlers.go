// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package api

import (
	"context"
	"time"

	"github.com/tomtom215/moim/internal/discovery"
	"github.com/tomtom215/moim/internal/models"
	"github.com/tomtom215/moim/internal/store"
)

// PlaceFinder runs venue discovery. *discovery.Aggregator implements it.
type PlaceFinder interface {
	ByCategory(ctx context.Context, tag models.Category, opts discovery.Options) (discovery.Result, error)
	AllCategories(ctx context.Context, opts discovery.Options) (discovery.Result, error)
	DefaultOptions() discovery.Options
	Resolver() *discovery.Resolver
}

// RegionLabeler turns coordinates into a neighborhood label.
// *discovery.RegionResolver implements it.
type RegionLabeler interface {
	Label(ctx context.Context, lon, lat float64) string
}

// Pinger is a dependency checked by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CommunityStore persists the community features. *store.Store implements it.
type CommunityStore interface {
	Pinger

	AddBookmark(ctx context.Context, user string, b models.Bookmark) (models.Bookmark, error)
	RemoveBookmark(ctx context.Context, user, venueID string) error
	ToggleBookmark(ctx context.Context, user string, b models.Bookmark) (bool, error)
	ListBookmarks(ctx context.Context, user string) ([]models.Bookmark, error)

	CreateMeeting(ctx context.Context, owner string, m models.Meeting) (models.Meeting, error)
	GetMeeting(ctx context.Context, id string) (models.Meeting, error)
	UpdateMeeting(ctx context.Context, id, subject string, patch models.MeetingPatch) (models.Meeting, error)
	CompleteMeeting(ctx context.Context, id, subject string) (models.Meeting, error)
	DeleteMeeting(ctx context.Context, id, subject string) error
	ListMeetings(ctx context.Context, owner string, status models.MeetingStatus) ([]models.Meeting, error)

	CreatePost(ctx context.Context, author, nickname string, p models.Post) (models.Post, error)
	GetPost(ctx context.Context, id string) (models.PostDetail, error)
	ListPosts(ctx context.Context, f store.PostFilter) ([]models.Post, int, error)
	UpdatePost(ctx context.Context, id, subject string, patch models.PostPatch) (models.Post, error)
	DeletePost(ctx context.Context, id, subject string) error
	AddComment(ctx context.Context, postID, author, nickname, content string) (models.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID, subject string) error
	ToggleLike(ctx context.Context, postID, user string) (bool, int, error)
	HasLiked(ctx context.Context, postID, user string) (bool, error)

	SendFriendRequest(ctx context.Context, from, fromNickname, to string) (models.FriendRequest, error)
	AcceptFriendRequest(ctx context.Context, id, subject, subjectNickname string) (models.FriendRequest, error)
	RejectFriendRequest(ctx context.Context, id, subject string) (models.FriendRequest, error)
	RemoveFriend(ctx context.Context, user, friend string) error
	ListFriends(ctx context.Context, user string) ([]models.Friend, error)
	ListPendingRequests(ctx context.Context, user string) ([]models.FriendRequest, error)
	ListSentRequests(ctx context.Context, user string) ([]models.FriendRequest, error)
}

// Handler serves every API endpoint.
type Handler struct {
	places    PlaceFinder
	regions   RegionLabeler
	store     CommunityStore
	provider  Pinger // Kakao API, for readiness
	startTime time.Time
	now       func() time.Time
}

// HandlerDeps lists the Handler's collaborators. Provider may be nil, in which
// case readiness only checks the store.
type HandlerDeps struct {
	Places   PlaceFinder
	Regions  RegionLabeler
	Store    CommunityStore
	Provider Pinger
}

// NewHandler creates a Handler.
func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		places:    deps.Places,
		regions:   deps.Regions,
		store:     deps.Store,
		provider:  deps.Provider,
		startTime: time.Now(),
		now:       time.Now,
	}
}
