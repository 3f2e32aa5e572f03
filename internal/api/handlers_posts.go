// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/models"
	"github.com/tomtom215/moim/internal/store"
)

// PostView is a post as rendered for the feed.
type PostView struct {
	models.Post
	TypeLabel    string `json:"typeLabel"`
	TypeEmoji    string `json:"typeEmoji"`
	RelativeTime string `json:"relativeTime"`
}

// CommentView is a comment with a display timestamp.
type CommentView struct {
	models.Comment
	RelativeTime string `json:"relativeTime"`
}

// PostDetailView is the payload of GET /api/v1/posts/{id}.
type PostDetailView struct {
	PostView
	Liked    bool          `json:"liked"`
	Comments []CommentView `json:"comments"`
}

// LikeState is the payload of POST /api/v1/posts/{id}/like.
type LikeState struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

func (h *Handler) postView(p models.Post) PostView {
	return PostView{
		Post:         p,
		TypeLabel:    p.Type.Label(),
		TypeEmoji:    p.Type.Emoji(),
		RelativeTime: models.RelativeTime(p.CreatedAt, h.now()),
	}
}

func (h *Handler) commentView(c models.Comment) CommentView {
	return CommentView{Comment: c, RelativeTime: models.RelativeTime(c.CreatedAt, h.now())}
}

// ListPosts returns the feed, newest first.
//
// Query parameters: type (new|review|event|general), limit (1..100,
// default 20), offset.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	if _, ok := subjectFrom(w, r); !ok {
		return
	}
	q := PostsQuery{Type: strings.TrimSpace(r.URL.Query().Get("type"))}
	var err error
	if q.Limit, err = getIntParam(r, "limit"); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	if q.Offset, err = getIntParam(r, "offset"); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	if !validateRequest(w, r, &q) {
		return
	}

	limit := q.Limit
	if limit == 0 {
		limit = store.DefaultPostLimit
	}
	posts, total, err := h.store.ListPosts(r.Context(), store.PostFilter{
		Type:   models.PostType(q.Type),
		Limit:  limit,
		Offset: q.Offset,
	})
	if err != nil {
		respondError(w, r, "Post", err)
		return
	}

	views := make([]PostView, len(posts))
	for i, p := range posts {
		views[i] = h.postView(p)
	}
	NewResponseWriter(w, r).SuccessWithPagination(views, &PaginationMeta{
		Total:   total,
		Count:   len(views),
		Offset:  q.Offset,
		Limit:   limit,
		HasMore: q.Offset+len(views) < total,
	})
}

// CreatePost publishes a post under the caller's nickname.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	var req CreatePostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	p, err := h.store.CreatePost(r.Context(), subject.ID, subject.DisplayName(), req.ToPost())
	if err != nil {
		respondError(w, r, "Post", err)
		return
	}
	logging.Ctx(r.Context()).Info().Str("post_id", p.ID).Str("type", string(p.Type)).Msg("Post created")
	NewResponseWriter(w, r).Created(h.postView(p))
}

// GetPost returns a post with its comments and whether the caller liked it.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	detail, err := h.store.GetPost(r.Context(), id)
	if err != nil {
		respondError(w, r, "Post", err)
		return
	}
	liked, err := h.store.HasLiked(r.Context(), id, subject.ID)
	if err != nil {
		respondError(w, r, "Post", err)
		return
	}

	comments := make([]CommentView, len(detail.Comments))
	for i, c := range detail.Comments {
		comments[i] = h.commentView(c)
	}
	NewResponseWriter(w, r).Success(PostDetailView{
		PostView: h.postView(detail.Post),
		Liked:    liked,
		Comments: comments,
	})
}

// UpdatePost applies a partial update. Only the author may update.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	var req UpdatePostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	p, err := h.store.UpdatePost(r.Context(), chi.URLParam(r, "id"), subject.ID, req.ToPatch())
	if err != nil {
		respondError(w, r, "Post", err)
		return
	}
	NewResponseWriter(w, r).Success(h.postView(p))
}

// DeletePost removes a post with its comments and likes.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	if err := h.store.DeletePost(r.Context(), chi.URLParam(r, "id"), subject.ID); err != nil {
		respondError(w, r, "Post", err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// AddComment comments on a post.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	var req CommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	c, err := h.store.AddComment(r.Context(), chi.URLParam(r, "id"), subject.ID, subject.DisplayName(), strings.TrimSpace(req.Content))
	if err != nil {
		respondError(w, r, "Post", err)
		return
	}
	NewResponseWriter(w, r).Created(h.commentView(c))
}

// DeleteComment removes one of the caller's comments.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	err := h.store.DeleteComment(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "commentID"), subject.ID)
	if err != nil {
		respondError(w, r, "Comment", err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// ToggleLike likes or unlikes a post.
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFrom(w, r)
	if !ok {
		return
	}
	liked, count, err := h.store.ToggleLike(r.Context(), chi.URLParam(r, "id"), subject.ID)
	if err != nil {
		respondError(w, r, "Post", err)
		return
	}
	NewResponseWriter(w, r).Success(LikeState{Liked: liked, LikesCount: count})
}
