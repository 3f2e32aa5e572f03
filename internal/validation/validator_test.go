// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type postRequest struct {
	Type    string `json:"type" validate:"required,post_type"`
	Title   string `json:"title" validate:"notblank,max=20"`
	Content string `json:"content" validate:"notblank"`
}

type meetingRequest struct {
	Title  string  `json:"title" validate:"notblank,max=50"`
	Status string  `json:"status" validate:"omitempty,meeting_status"`
	X      float64 `json:"x" validate:"omitempty,longitude"`
	Y      float64 `json:"y" validate:"omitempty,latitude"`
	Limit  int     `json:"limit" validate:"min=0,max=100"`
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"post", &postRequest{Type: "review", Title: "방탈출 후기", Content: "재밌었어요"}},
		{"meeting without status", &meetingRequest{Title: "주말 보드게임", Limit: 20}},
		{"meeting with status", &meetingRequest{Title: "영화 모임", Status: "completed", X: 127.0276, Y: 37.4979}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateStruct(tt.input); err != nil {
				t.Errorf("ValidateStruct() unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
	}{
		{"missing type", &postRequest{Title: "t", Content: "c"}, "type", "required"},
		{"unknown type", &postRequest{Type: "ad", Title: "t", Content: "c"}, "type", "post_type"},
		{"blank title", &postRequest{Type: "new", Title: "   ", Content: "c"}, "title", "notblank"},
		{"title too long", &postRequest{Type: "new", Title: strings.Repeat("가", 21), Content: "c"}, "title", "max"},
		{"bad status", &meetingRequest{Title: "m", Status: "cancelled"}, "status", "meeting_status"},
		{"bad longitude", &meetingRequest{Title: "m", X: 500}, "x", "longitude"},
		{"limit too large", &meetingRequest{Title: "m", Limit: 101}, "limit", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() expected error, got nil")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("Errors() len = %d, want 1 (%v)", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{"required", &postRequest{Title: "t", Content: "c"}, "type is required"},
		{"post type", &postRequest{Type: "x", Title: "t", Content: "c"}, "type must be one of: new, review, event, general"},
		{"string max", &postRequest{Type: "new", Title: strings.Repeat("a", 21), Content: "c"}, "title must be at most 20 characters"},
		{"number max", &meetingRequest{Title: "m", Limit: 500}, "limit must be at most 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		err := ValidateStruct(&postRequest{Type: "new", Title: "", Content: "c"})
		if err == nil {
			t.Fatal("expected error")
		}
		apiErr := err.ToAPIError()
		if apiErr.Code != CodeValidationFailed {
			t.Errorf("Code = %q, want %q", apiErr.Code, CodeValidationFailed)
		}
		if apiErr.Details["field"] != "title" {
			t.Errorf("Details[field] = %v, want title", apiErr.Details["field"])
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		err := ValidateStruct(&postRequest{})
		if err == nil {
			t.Fatal("expected error")
		}
		apiErr := err.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok {
			t.Fatalf("Details[fields] type = %T", apiErr.Details["fields"])
		}
		if len(fields) != 3 {
			t.Errorf("len(fields) = %d, want 3", len(fields))
		}
		if !strings.Contains(apiErr.Message, "type: type is required") {
			t.Errorf("Message = %q, want it to mention the type field", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q, want Validation failed", apiErr.Message)
		}
	})
}

type scheduleRequest struct {
	Date string   `json:"date" validate:"required,datetime=2006-01-02"`
	X    *float64 `json:"x" validate:"required_with=Y,omitempty,longitude"`
	Y    *float64 `json:"y" validate:"required_with=X,omitempty,latitude"`
}

func TestErrorMessages_RequestRules(t *testing.T) {
	t.Parallel()
	lat := 37.4979

	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{"datetime layout", &scheduleRequest{Date: "2026/10/17"}, "date must match the layout 2006-01-02"},
		{"coordinate pair", &scheduleRequest{Date: "2026-10-17", Y: &lat}, "x is required when y is set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}
