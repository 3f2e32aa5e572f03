// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/moim/internal/models"
)

const prefixBookmark = "bookmark"

// AddBookmark saves b for user. Saving a venue that is already bookmarked
// keeps the original BookmarkedAt and refreshes the venue fields.
func (s *Store) AddBookmark(ctx context.Context, user string, b models.Bookmark) (models.Bookmark, error) {
	if user == "" || b.VenueID == "" {
		return models.Bookmark{}, ErrInvalidRequest
	}
	var saved models.Bookmark
	err := s.update("add_bookmark", func(txn *badger.Txn) error {
		saved = b
		k := key(prefixBookmark, user, b.VenueID)
		var existing models.Bookmark
		switch err := getJSON(txn, k, &existing); {
		case err == nil:
			saved.BookmarkedAt = existing.BookmarkedAt
		case errors.Is(err, ErrNotFound):
			saved.BookmarkedAt = s.now()
		default:
			return err
		}
		return setJSON(txn, k, saved)
	})
	if err != nil {
		return models.Bookmark{}, err
	}
	return saved, nil
}

// RemoveBookmark deletes a bookmark. It returns ErrNotFound if the venue is
// not bookmarked.
func (s *Store) RemoveBookmark(ctx context.Context, user, venueID string) error {
	return s.update("remove_bookmark", func(txn *badger.Txn) error {
		k := key(prefixBookmark, user, venueID)
		found, err := exists(txn, k)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		return deleteKey(txn, k)
	})
}

// IsBookmarked reports whether user has bookmarked venueID.
func (s *Store) IsBookmarked(ctx context.Context, user, venueID string) (bool, error) {
	var found bool
	err := s.view("is_bookmarked", func(txn *badger.Txn) error {
		var err error
		found, err = exists(txn, key(prefixBookmark, user, venueID))
		return err
	})
	return found, err
}

// ToggleBookmark adds b if it is absent and removes it otherwise. It returns
// whether the venue is bookmarked afterwards.
func (s *Store) ToggleBookmark(ctx context.Context, user string, b models.Bookmark) (bool, error) {
	if user == "" || b.VenueID == "" {
		return false, ErrInvalidRequest
	}
	var bookmarked bool
	err := s.update("toggle_bookmark", func(txn *badger.Txn) error {
		k := key(prefixBookmark, user, b.VenueID)
		found, err := exists(txn, k)
		if err != nil {
			return err
		}
		if found {
			bookmarked = false
			return deleteKey(txn, k)
		}
		bookmarked = true
		b.BookmarkedAt = s.now()
		return setJSON(txn, k, b)
	})
	return bookmarked, err
}

// ListBookmarks returns user's bookmarks, newest first.
func (s *Store) ListBookmarks(ctx context.Context, user string) ([]models.Bookmark, error) {
	bookmarks := make([]models.Bookmark, 0)
	err := s.view("list_bookmarks", func(txn *badger.Txn) error {
		bookmarks = bookmarks[:0]
		return scanPrefix(txn, prefix(prefixBookmark, user), func(val []byte) error {
			var b models.Bookmark
			if err := json.Unmarshal(val, &b); err != nil {
				return fmt.Errorf("decode bookmark: %w", err)
			}
			bookmarks = append(bookmarks, b)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(bookmarks, func(i, j int) bool {
		if !bookmarks[i].BookmarkedAt.Equal(bookmarks[j].BookmarkedAt) {
			return bookmarks[i].BookmarkedAt.After(bookmarks[j].BookmarkedAt)
		}
		return bookmarks[i].VenueID < bookmarks[j].VenueID
	})
	return bookmarks, nil
}
