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
	"github.com/google/uuid"

	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/models"
)

const (
	prefixFriendReq     = "friend_req"
	prefixFriendReqTo   = "friend_req_to"
	prefixFriendReqFrom = "friend_req_from"
	prefixFriend        = "friend"
)

// SendFriendRequest creates a pending request from one user to another.
// A pending request in either direction blocks a new one.
func (s *Store) SendFriendRequest(ctx context.Context, from, fromNickname, to string) (models.FriendRequest, error) {
	if from == "" || to == "" || from == to {
		return models.FriendRequest{}, ErrInvalidRequest
	}
	if fromNickname == "" {
		fromNickname = models.DefaultNickname
	}
	now := s.now()
	req := models.FriendRequest{
		ID:           uuid.NewString(),
		FromUserID:   from,
		FromNickname: fromNickname,
		ToUserID:     to,
		Status:       models.FriendRequestPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.update("send_friend_request", func(txn *badger.Txn) error {
		friends, err := exists(txn, key(prefixFriend, from, to))
		if err != nil {
			return err
		}
		if friends {
			return ErrAlreadyFriends
		}
		pending, err := hasPendingBetween(txn, from, to)
		if err != nil {
			return err
		}
		if pending {
			return ErrRequestPending
		}
		if err := setJSON(txn, key(prefixFriendReq, req.ID), req); err != nil {
			return err
		}
		if err := txn.Set(key(prefixFriendReqTo, to, req.ID), []byte(req.ID)); err != nil {
			return fmt.Errorf("index friend request: %w", err)
		}
		return txn.Set(key(prefixFriendReqFrom, from, req.ID), []byte(req.ID))
	})
	if err != nil {
		return models.FriendRequest{}, err
	}
	logging.Ctx(ctx).Debug().Str("request_id", req.ID).Str("to", to).Msg("Friend request sent")
	return req, nil
}

// hasPendingBetween reports whether a pending request exists from a to b or
// from b to a.
func hasPendingBetween(txn *badger.Txn, a, b string) (bool, error) {
	for _, pair := range [][2]string{{a, b}, {b, a}} {
		reqs, err := requestsByIndex(txn, prefix(prefixFriendReqFrom, pair[0]))
		if err != nil {
			return false, err
		}
		for _, r := range reqs {
			if r.ToUserID == pair[1] && r.Status == models.FriendRequestPending {
				return true, nil
			}
		}
	}
	return false, nil
}

func requestsByIndex(txn *badger.Txn, p []byte) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := scanPrefix(txn, p, func(val []byte) error {
		var r models.FriendRequest
		err := getJSON(txn, key(prefixFriendReq, string(val)), &r)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		reqs = append(reqs, r)
		return nil
	})
	return reqs, err
}

// AcceptFriendRequest accepts a pending request addressed to subject and
// records the friendship in both directions. subjectNickname is shown to the
// sender in their friend list.
func (s *Store) AcceptFriendRequest(ctx context.Context, id, subject, subjectNickname string) (models.FriendRequest, error) {
	if subjectNickname == "" {
		subjectNickname = models.DefaultNickname
	}
	return s.answerFriendRequest("accept_friend_request", id, subject, models.FriendRequestAccepted,
		func(txn *badger.Txn, req models.FriendRequest) error {
			now := s.now()
			toSide := models.Friend{UserID: req.ToUserID, FriendID: req.FromUserID, Nickname: req.FromNickname, CreatedAt: now}
			fromSide := models.Friend{UserID: req.FromUserID, FriendID: req.ToUserID, Nickname: subjectNickname, CreatedAt: now}
			if err := setJSON(txn, key(prefixFriend, toSide.UserID, toSide.FriendID), toSide); err != nil {
				return err
			}
			return setJSON(txn, key(prefixFriend, fromSide.UserID, fromSide.FriendID), fromSide)
		})
}

// RejectFriendRequest rejects a pending request addressed to subject.
func (s *Store) RejectFriendRequest(ctx context.Context, id, subject string) (models.FriendRequest, error) {
	return s.answerFriendRequest("reject_friend_request", id, subject, models.FriendRequestRejected, nil)
}

func (s *Store) answerFriendRequest(op, id, subject string, status models.FriendRequestStatus,
	onAnswer func(*badger.Txn, models.FriendRequest) error,
) (models.FriendRequest, error) {
	var req models.FriendRequest
	err := s.update(op, func(txn *badger.Txn) error {
		req = models.FriendRequest{}
		k := key(prefixFriendReq, id)
		if err := getJSON(txn, k, &req); err != nil {
			return err
		}
		if req.ToUserID != subject {
			return ErrForbidden
		}
		if req.Status != models.FriendRequestPending {
			return ErrInvalidRequest
		}
		if onAnswer != nil {
			if err := onAnswer(txn, req); err != nil {
				return err
			}
		}
		req.Status = status
		req.UpdatedAt = s.now()
		return setJSON(txn, k, req)
	})
	if err != nil {
		return models.FriendRequest{}, err
	}
	return req, nil
}

// RemoveFriend ends a friendship in both directions.
func (s *Store) RemoveFriend(ctx context.Context, user, friend string) error {
	return s.update("remove_friend", func(txn *badger.Txn) error {
		k := key(prefixFriend, user, friend)
		found, err := exists(txn, k)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		if err := deleteKey(txn, k); err != nil {
			return err
		}
		return deleteKey(txn, key(prefixFriend, friend, user))
	})
}

// ListFriends returns user's friends, most recent first.
func (s *Store) ListFriends(ctx context.Context, user string) ([]models.Friend, error) {
	friends := make([]models.Friend, 0)
	err := s.view("list_friends", func(txn *badger.Txn) error {
		return scanPrefix(txn, prefix(prefixFriend, user), func(val []byte) error {
			var f models.Friend
			if err := json.Unmarshal(val, &f); err != nil {
				return fmt.Errorf("decode friend: %w", err)
			}
			friends = append(friends, f)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(friends, func(i, j int) bool {
		if !friends[i].CreatedAt.Equal(friends[j].CreatedAt) {
			return friends[i].CreatedAt.After(friends[j].CreatedAt)
		}
		return friends[i].FriendID < friends[j].FriendID
	})
	return friends, nil
}

// ListPendingRequests returns pending requests received by user, newest first.
func (s *Store) ListPendingRequests(ctx context.Context, user string) ([]models.FriendRequest, error) {
	return s.pendingRequests("list_pending_requests", prefix(prefixFriendReqTo, user))
}

// ListSentRequests returns pending requests sent by user, newest first.
func (s *Store) ListSentRequests(ctx context.Context, user string) ([]models.FriendRequest, error) {
	return s.pendingRequests("list_sent_requests", prefix(prefixFriendReqFrom, user))
}

func (s *Store) pendingRequests(op string, index []byte) ([]models.FriendRequest, error) {
	pending := make([]models.FriendRequest, 0)
	err := s.view(op, func(txn *badger.Txn) error {
		reqs, err := requestsByIndex(txn, index)
		if err != nil {
			return err
		}
		for _, r := range reqs {
			if r.Status == models.FriendRequestPending {
				pending = append(pending, r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(pending, func(i, j int) bool {
		if !pending[i].CreatedAt.Equal(pending[j].CreatedAt) {
			return pending[i].CreatedAt.After(pending[j].CreatedAt)
		}
		return pending[i].ID > pending[j].ID
	})
	return pending, nil
}
