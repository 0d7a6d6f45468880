package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the resolved authentication state. Unresolved is distinct from
// Unauthenticated so navigation can hold instead of redirecting before the
// persisted token has been checked.
type Status int

const (
	StatusUnresolved Status = iota
	StatusUnauthenticated
	StatusAuthenticating
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnresolved:
		return "unresolved"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Timestamp tolerates the backend's timezone-naive datetimes
// ("2026-08-30T12:34:56.789012") alongside RFC3339.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// Profile is the canonical server record. The client never derives profile
// fields; updates replace the whole value with the server response.
type Profile struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Age             *int      `json:"age,omitempty"`
	Height          *float64  `json:"height,omitempty"`
	Weight          *float64  `json:"weight,omitempty"`
	Sport           string    `json:"sport,omitempty"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
	Goal            string    `json:"goal,omitempty"`
	ProfilePicture  string    `json:"profile_picture,omitempty"`
	CreatedAt       Timestamp `json:"created_at,omitempty"`
}

// Signup carries the fields submitted when creating an account.
type Signup struct {
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	Name            string   `json:"name"`
	Age             *int     `json:"age,omitempty"`
	Height          *float64 `json:"height,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	Sport           string   `json:"sport,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	Goal            string   `json:"goal,omitempty"`
}

// ProfileUpdate is a partial update; nil fields are left untouched by the
// server. The response, not this value, becomes the new profile.
type ProfileUpdate struct {
	Name            *string  `json:"name,omitempty"`
	Age             *int     `json:"age,omitempty"`
	Height          *float64 `json:"height,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	Sport           *string  `json:"sport,omitempty"`
	ExperienceLevel *string  `json:"experience_level,omitempty"`
	Goal            *string  `json:"goal,omitempty"`
	ProfilePicture  *string  `json:"profile_picture,omitempty"`
}
