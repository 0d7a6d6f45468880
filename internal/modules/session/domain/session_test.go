package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"endure/internal/modules/session/domain"
)

func TestProfileDecodeNaiveCreatedAt(t *testing.T) {
	t.Parallel()
	payload := `{"id": 1, "email": "ana@example.com", "name": "Ana",
		"created_at": "2026-08-30T12:34:56.789012"}`
	var p domain.Profile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	want := time.Date(2026, 8, 30, 12, 34, 56, 789012000, time.UTC)
	if !p.CreatedAt.Equal(want) {
		t.Fatalf("created_at = %v, want %v", p.CreatedAt.Time, want)
	}
}

func TestProfileDecodeRFC3339CreatedAt(t *testing.T) {
	t.Parallel()
	var p domain.Profile
	payload := `{"id": 2, "email": "bo@example.com", "name": "Bo",
		"created_at": "2026-08-30T12:34:56Z"}`
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if p.CreatedAt.IsZero() {
		t.Fatal("created_at not applied")
	}
}

func TestProfileDecodeMissingCreatedAt(t *testing.T) {
	t.Parallel()
	var p domain.Profile
	if err := json.Unmarshal([]byte(`{"id": 3, "email": "c@example.com", "name": "C"}`), &p); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if !p.CreatedAt.IsZero() {
		t.Fatalf("created_at should be zero, got %v", p.CreatedAt.Time)
	}
}
