package model

import (
	"testing"
)

func TestMood_Valid(t *testing.T) {
	tests := []struct {
		mood Mood
		want bool
	}{
		{MoodGreen, true},
		{MoodYellow, true},
		{MoodRed, true},
		{Mood("purple"), false},
		{Mood("GREEN"), false},
		{Mood(""), false},
	}

	for _, tt := range tests {
		if got := tt.mood.Valid(); got != tt.want {
			t.Errorf("Mood(%q).Valid() = %v, want %v", tt.mood, got, tt.want)
		}
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Code: "SOME_CODE", Message: "何かが起きました。"}
	want := "[SOME_CODE] 何かが起きました。"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestNewFollowUpConflictError(t *testing.T) {
	err := NewFollowUpConflictError()

	if err.Code != ErrCodeFollowUpConflict {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeFollowUpConflict)
	}
	if err.Category != "conflict" {
		t.Errorf("Category = %q, want %q", err.Category, "conflict")
	}
	if err.Message == "" {
		t.Error("expected non-empty message")
	}
}

func TestNewDatabaseError(t *testing.T) {
	err := NewDatabaseError()

	if err.Code != ErrCodeDatabaseError {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeDatabaseError)
	}
	if err.Category != "system" {
		t.Errorf("Category = %q, want %q", err.Category, "system")
	}
}
