// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/models"
)

const (
	prefixPost    = "post"
	prefixComment = "comment"
	prefixLike    = "like"
)

// Post listing limits.
const (
	DefaultPostLimit = 20
	MaxPostLimit     = 100
)

// PostFilter selects a page of posts. A zero Type matches every type.
type PostFilter struct {
	Type   models.PostType
	Limit  int
	Offset int
}

func (f PostFilter) limit() int {
	switch {
	case f.Limit <= 0:
		return DefaultPostLimit
	case f.Limit > MaxPostLimit:
		return MaxPostLimit
	default:
		return f.Limit
	}
}

// CreatePost stores a new post by author. An empty nickname becomes
// models.DefaultNickname and an empty type becomes models.PostGeneral.
func (s *Store) CreatePost(ctx context.Context, author, nickname string, p models.Post) (models.Post, error) {
	if author == "" {
		return models.Post{}, ErrInvalidRequest
	}
	if nickname == "" {
		nickname = models.DefaultNickname
	}
	if p.Type == "" {
		p.Type = models.PostGeneral
	}
	now := s.now()
	p.ID = uuid.NewString()
	p.AuthorID = author
	p.AuthorNickname = nickname
	p.LikesCount = 0
	p.CommentsCount = 0
	p.CreatedAt = now
	p.UpdatedAt = now

	err := s.update("create_post", func(txn *badger.Txn) error {
		return setJSON(txn, key(prefixPost, p.ID), p)
	})
	if err != nil {
		return models.Post{}, err
	}
	logging.Ctx(ctx).Debug().Str("post_id", p.ID).Str("type", string(p.Type)).Msg("Post created")
	return p, nil
}

// GetPost returns a post with its comments in ascending order.
func (s *Store) GetPost(ctx context.Context, id string) (models.PostDetail, error) {
	var detail models.PostDetail
	err := s.view("get_post", func(txn *badger.Txn) error {
		if err := getJSON(txn, key(prefixPost, id), &detail.Post); err != nil {
			return err
		}
		detail.Comments = make([]models.Comment, 0, detail.CommentsCount)
		return scanPrefix(txn, prefix(prefixComment, id), func(val []byte) error {
			var c models.Comment
			if err := json.Unmarshal(val, &c); err != nil {
				return fmt.Errorf("decode comment: %w", err)
			}
			detail.Comments = append(detail.Comments, c)
			return nil
		})
	})
	if err != nil {
		return models.PostDetail{}, err
	}
	sort.SliceStable(detail.Comments, func(i, j int) bool {
		a, b := detail.Comments[i], detail.Comments[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return detail, nil
}

// ListPosts returns one page of posts, newest first, and the number of posts
// matching the filter.
func (s *Store) ListPosts(ctx context.Context, f PostFilter) ([]models.Post, int, error) {
	var all []models.Post
	err := s.view("list_posts", func(txn *badger.Txn) error {
		return scanPrefix(txn, prefix(prefixPost), func(val []byte) error {
			var p models.Post
			if err := json.Unmarshal(val, &p); err != nil {
				return fmt.Errorf("decode post: %w", err)
			}
			if f.Type == "" || p.Type == f.Type {
				all = append(all, p)
			}
			return nil
		})
	})
	if err != nil {
		return nil, 0, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	total := len(all)
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []models.Post{}, total, nil
	}
	end := offset + f.limit()
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// UpdatePost applies patch to a post written by subject.
func (s *Store) UpdatePost(ctx context.Context, id, subject string, patch models.PostPatch) (models.Post, error) {
	var p models.Post
	err := s.update("update_post", func(txn *badger.Txn) error {
		p = models.Post{}
		k := key(prefixPost, id)
		if err := getJSON(txn, k, &p); err != nil {
			return err
		}
		if p.AuthorID != subject {
			return ErrForbidden
		}
		if patch.Type != nil {
			p.Type = *patch.Type
		}
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Content != nil {
			p.Content = *patch.Content
		}
		if patch.ImageURL != nil {
			p.ImageURL = *patch.ImageURL
		}
		p.UpdatedAt = s.now()
		return setJSON(txn, k, p)
	})
	if err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// DeletePost removes a post written by subject together with its comments
// and likes.
func (s *Store) DeletePost(ctx context.Context, id, subject string) error {
	return s.update("delete_post", func(txn *badger.Txn) error {
		var p models.Post
		if err := getJSON(txn, key(prefixPost, id), &p); err != nil {
			return err
		}
		if p.AuthorID != subject {
			return ErrForbidden
		}
		keys := keysWithPrefix(txn, prefix(prefixComment, id))
		keys = append(keys, keysWithPrefix(txn, prefix(prefixLike, id))...)
		keys = append(keys, key(prefixPost, id))
		for _, k := range keys {
			if err := deleteKey(txn, k); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddComment appends a comment to a post and bumps its comment count.
func (s *Store) AddComment(ctx context.Context, postID, author, nickname, content string) (models.Comment, error) {
	if author == "" || content == "" {
		return models.Comment{}, ErrInvalidRequest
	}
	if nickname == "" {
		nickname = models.DefaultNickname
	}
	id, err := uuid.NewV7()
	if err != nil {
		return models.Comment{}, fmt.Errorf("generate comment id: %w", err)
	}
	c := models.Comment{
		ID:             id.String(),
		PostID:         postID,
		AuthorID:       author,
		AuthorNickname: nickname,
		Content:        content,
		CreatedAt:      s.now(),
	}
	err = s.update("add_comment", func(txn *badger.Txn) error {
		var p models.Post
		k := key(prefixPost, postID)
		if err := getJSON(txn, k, &p); err != nil {
			return err
		}
		p.CommentsCount++
		if err := setJSON(txn, k, p); err != nil {
			return err
		}
		return setJSON(txn, key(prefixComment, postID, c.ID), c)
	})
	if err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// DeleteComment removes a comment written by subject.
func (s *Store) DeleteComment(ctx context.Context, postID, commentID, subject string) error {
	return s.update("delete_comment", func(txn *badger.Txn) error {
		var c models.Comment
		ck := key(prefixComment, postID, commentID)
		if err := getJSON(txn, ck, &c); err != nil {
			return err
		}
		if c.AuthorID != subject {
			return ErrForbidden
		}
		var p models.Post
		pk := key(prefixPost, postID)
		if err := getJSON(txn, pk, &p); err != nil {
			return err
		}
		if p.CommentsCount > 0 {
			p.CommentsCount--
		}
		if err := setJSON(txn, pk, p); err != nil {
			return err
		}
		return deleteKey(txn, ck)
	})
}

// ToggleLike likes the post for user, or unlikes it if already liked. It
// returns the new state and like count.
func (s *Store) ToggleLike(ctx context.Context, postID, user string) (bool, int, error) {
	if user == "" {
		return false, 0, ErrInvalidRequest
	}
	var (
		liked bool
		count int
	)
	err := s.update("toggle_like", func(txn *badger.Txn) error {
		var p models.Post
		pk := key(prefixPost, postID)
		if err := getJSON(txn, pk, &p); err != nil {
			return err
		}
		lk := key(prefixLike, postID, user)
		found, err := exists(txn, lk)
		if err != nil {
			return err
		}
		if found {
			liked = false
			if p.LikesCount > 0 {
				p.LikesCount--
			}
			if err := deleteKey(txn, lk); err != nil {
				return err
			}
		} else {
			liked = true
			p.LikesCount++
			if err := txn.Set(lk, nil); err != nil {
				return fmt.Errorf("set like: %w", err)
			}
		}
		count = p.LikesCount
		return setJSON(txn, pk, p)
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// HasLiked reports whether user likes the post.
func (s *Store) HasLiked(ctx context.Context, postID, user string) (bool, error) {
	var liked bool
	err := s.view("has_liked", func(txn *badger.Txn) error {
		var err error
		liked, err = exists(txn, key(prefixLike, postID, user))
		return err
	})
	return liked, err
}
