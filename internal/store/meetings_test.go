// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/moim/internal/models"
)

func newMeeting(title string) models.Meeting {
	return models.Meeting{
		Title: title,
		Date:  "2026-05-02",
		Time:  "15:00",
		Place: "강남 코인노래방",
		// Caller-supplied values below are overwritten on create.
		Participants: 7,
		Status:       models.MeetingCompleted,
	}
}

func TestCreateMeeting_AssignsDefaults(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	m, err := s.CreateMeeting(ctx, "u1", newMeeting("노래방 모임"))
	if err != nil {
		t.Fatalf("CreateMeeting() error = %v", err)
	}
	if m.ID == "" {
		t.Error("ID not assigned")
	}
	if m.OwnerID != "u1" {
		t.Errorf("OwnerID = %q, want u1", m.OwnerID)
	}
	if m.Participants != 1 {
		t.Errorf("Participants = %d, want 1", m.Participants)
	}
	if m.Status != models.MeetingUpcoming {
		t.Errorf("Status = %q, want upcoming", m.Status)
	}
	if m.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	got, err := s.GetMeeting(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMeeting() error = %v", err)
	}
	if got.Title != "노래방 모임" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestGetMeeting_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if _, err := s.GetMeeting(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateMeeting(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	m, err := s.CreateMeeting(ctx, "u1", newMeeting("before"))
	if err != nil {
		t.Fatalf("CreateMeeting() error = %v", err)
	}

	title := "after"
	participants := 4
	patch := models.MeetingPatch{Title: &title, Participants: &participants}

	if _, err := s.UpdateMeeting(ctx, m.ID, "u2", patch); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner update error = %v, want ErrForbidden", err)
	}

	updated, err := s.UpdateMeeting(ctx, m.ID, "u1", patch)
	if err != nil {
		t.Fatalf("UpdateMeeting() error = %v", err)
	}
	if updated.Title != "after" || updated.Participants != 4 {
		t.Errorf("updated = %+v", updated)
	}
	if updated.Place != m.Place {
		t.Errorf("Place = %q, want unchanged %q", updated.Place, m.Place)
	}
	if !updated.UpdatedAt.After(m.UpdatedAt) {
		t.Error("UpdatedAt not advanced")
	}

	if _, err := s.UpdateMeeting(ctx, "missing", "u1", patch); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing meeting error = %v, want ErrNotFound", err)
	}
}

func TestCompleteAndListMeetings(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	first, _ := s.CreateMeeting(ctx, "u1", newMeeting("first"))
	second, _ := s.CreateMeeting(ctx, "u1", newMeeting("second"))
	third, _ := s.CreateMeeting(ctx, "u1", newMeeting("third"))
	if _, err := s.CreateMeeting(ctx, "u2", newMeeting("other")); err != nil {
		t.Fatalf("CreateMeeting() error = %v", err)
	}

	if _, err := s.CompleteMeeting(ctx, second.ID, "u2"); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner complete error = %v, want ErrForbidden", err)
	}
	done, err := s.CompleteMeeting(ctx, second.ID, "u1")
	if err != nil {
		t.Fatalf("CompleteMeeting() error = %v", err)
	}
	if done.Status != models.MeetingCompleted {
		t.Errorf("Status = %q, want completed", done.Status)
	}

	tests := []struct {
		name   string
		status models.MeetingStatus
		want   []string
	}{
		{"upcoming", models.MeetingUpcoming, []string{third.ID, first.ID}},
		{"completed", models.MeetingCompleted, []string{second.ID}},
		{"all", "", []string{third.ID, second.ID, first.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := s.ListMeetings(ctx, "u1", tt.status)
			if err != nil {
				t.Fatalf("ListMeetings() error = %v", err)
			}
			if len(list) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(list), len(tt.want))
			}
			for i, id := range tt.want {
				if list[i].ID != id {
					t.Errorf("list[%d] = %s (%s), want %s", i, list[i].ID, list[i].Title, id)
				}
			}
		})
	}
}

func TestDeleteMeeting(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	m, _ := s.CreateMeeting(ctx, "u1", newMeeting("gone"))

	if err := s.DeleteMeeting(ctx, m.ID, "u2"); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner delete error = %v, want ErrForbidden", err)
	}
	if err := s.DeleteMeeting(ctx, m.ID, "u1"); err != nil {
		t.Fatalf("DeleteMeeting() error = %v", err)
	}
	if _, err := s.GetMeeting(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetMeeting after delete error = %v, want ErrNotFound", err)
	}
	list, err := s.ListMeetings(ctx, "u1", "")
	if err != nil {
		t.Fatalf("ListMeetings() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ListMeetings after delete = %d meetings, want 0", len(list))
	}
	if err := s.DeleteMeeting(ctx, m.ID, "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}
