// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package store

import (
	"context"
	"errors"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/models"
)

const (
	prefixMeeting      = "meeting"
	prefixMeetingOwner = "meeting_owner"
)

// CreateMeeting stores a new meeting owned by owner. The id, participant
// count, status and timestamps are assigned here.
func (s *Store) CreateMeeting(ctx context.Context, owner string, m models.Meeting) (models.Meeting, error) {
	if owner == "" {
		return models.Meeting{}, ErrInvalidRequest
	}
	now := s.now()
	m.ID = uuid.NewString()
	m.OwnerID = owner
	m.Participants = 1
	m.Status = models.MeetingUpcoming
	m.CreatedAt = now
	m.UpdatedAt = now

	err := s.update("create_meeting", func(txn *badger.Txn) error {
		if err := setJSON(txn, key(prefixMeeting, m.ID), m); err != nil {
			return err
		}
		return txn.Set(key(prefixMeetingOwner, owner, m.ID), []byte(m.ID))
	})
	if err != nil {
		return models.Meeting{}, err
	}
	logging.Ctx(ctx).Debug().Str("meeting_id", m.ID).Msg("Meeting created")
	return m, nil
}

// GetMeeting returns a meeting by id.
func (s *Store) GetMeeting(ctx context.Context, id string) (models.Meeting, error) {
	var m models.Meeting
	err := s.view("get_meeting", func(txn *badger.Txn) error {
		return getJSON(txn, key(prefixMeeting, id), &m)
	})
	return m, err
}

// UpdateMeeting applies patch to a meeting owned by subject.
func (s *Store) UpdateMeeting(ctx context.Context, id, subject string, patch models.MeetingPatch) (models.Meeting, error) {
	return s.mutateMeeting("update_meeting", id, subject, func(m *models.Meeting) {
		patch.Apply(m)
	})
}

// CompleteMeeting marks a meeting owned by subject as completed.
func (s *Store) CompleteMeeting(ctx context.Context, id, subject string) (models.Meeting, error) {
	return s.mutateMeeting("complete_meeting", id, subject, func(m *models.Meeting) {
		m.Status = models.MeetingCompleted
	})
}

func (s *Store) mutateMeeting(op, id, subject string, mutate func(*models.Meeting)) (models.Meeting, error) {
	var m models.Meeting
	err := s.update(op, func(txn *badger.Txn) error {
		m = models.Meeting{}
		k := key(prefixMeeting, id)
		if err := getJSON(txn, k, &m); err != nil {
			return err
		}
		if m.OwnerID != subject {
			return ErrForbidden
		}
		mutate(&m)
		m.UpdatedAt = s.now()
		return setJSON(txn, k, m)
	})
	if err != nil {
		return models.Meeting{}, err
	}
	return m, nil
}

// DeleteMeeting removes a meeting owned by subject.
func (s *Store) DeleteMeeting(ctx context.Context, id, subject string) error {
	return s.update("delete_meeting", func(txn *badger.Txn) error {
		var m models.Meeting
		if err := getJSON(txn, key(prefixMeeting, id), &m); err != nil {
			return err
		}
		if m.OwnerID != subject {
			return ErrForbidden
		}
		if err := deleteKey(txn, key(prefixMeeting, id)); err != nil {
			return err
		}
		return deleteKey(txn, key(prefixMeetingOwner, m.OwnerID, id))
	})
}

// ListMeetings returns meetings owned by owner, newest first. An empty status
// returns every meeting.
func (s *Store) ListMeetings(ctx context.Context, owner string, status models.MeetingStatus) ([]models.Meeting, error) {
	meetings := make([]models.Meeting, 0)
	err := s.view("list_meetings", func(txn *badger.Txn) error {
		return scanPrefix(txn, prefix(prefixMeetingOwner, owner), func(val []byte) error {
			var m models.Meeting
			err := getJSON(txn, key(prefixMeeting, string(val)), &m)
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if status == "" || m.Status == status {
				meetings = append(meetings, m)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(meetings, func(i, j int) bool {
		if !meetings[i].CreatedAt.Equal(meetings[j].CreatedAt) {
			return meetings[i].CreatedAt.After(meetings[j].CreatedAt)
		}
		return meetings[i].ID > meetings[j].ID
	})
	return meetings, nil
}
