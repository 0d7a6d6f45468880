package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day as the backend serialises it ("2006-01-02").
// Timestamps with a time component are accepted as a fallback.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// Workout types accepted by the backend.
const (
	WorkoutEasy     = "easy"
	WorkoutTempo    = "tempo"
	WorkoutInterval = "interval"
	WorkoutLong     = "long"
	WorkoutRace     = "race"
	WorkoutRest     = "rest"
)

// Metrics are opaque server-computed numbers; the client classifies but
// never recomputes them.
type Metrics struct {
	Fitness  Fitness  `json:"fitness"`
	Fatigue  Fatigue  `json:"fatigue"`
	Form     Form     `json:"form"`
	Recovery Recovery `json:"recovery"`
	// WeeklyLoad is the summed training load of the trailing seven days.
	WeeklyLoad float64 `json:"weekly_training_load"`
}

type Fitness struct {
	CTL float64 `json:"ctl"`
}

type Fatigue struct {
	ATL float64 `json:"atl"`
}

type Form struct {
	TSB    float64 `json:"tsb"`
	Status string  `json:"status"`
}

// Recovery's canonical wire field is recovery_score; older server builds
// sent it as score, so decoding accepts both (canonical wins when present).
type Recovery struct {
	Score          float64
	Advice         string
	SleepQuality   float64
	TrainingStress float64
}

func (r *Recovery) UnmarshalJSON(data []byte) error {
	var wire struct {
		RecoveryScore  *float64 `json:"recovery_score"`
		LegacyScore    *float64 `json:"score"`
		Recommendation string   `json:"recommendation"`
		SleepQuality   float64  `json:"sleep_quality"`
		TrainingStress float64  `json:"training_stress"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch {
	case wire.RecoveryScore != nil:
		r.Score = *wire.RecoveryScore
	case wire.LegacyScore != nil:
		r.Score = *wire.LegacyScore
	}
	r.Advice = wire.Recommendation
	r.SleepQuality = wire.SleepQuality
	r.TrainingStress = wire.TrainingStress
	return nil
}

func (r Recovery) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RecoveryScore  float64 `json:"recovery_score"`
		Recommendation string  `json:"recommendation,omitempty"`
		SleepQuality   float64 `json:"sleep_quality,omitempty"`
		TrainingStress float64 `json:"training_stress,omitempty"`
	}{r.Score, r.Advice, r.SleepQuality, r.TrainingStress})
}

type WorkoutEntry struct {
	ID                int64    `json:"id"`
	Date              Date     `json:"date"`
	WorkoutType       string   `json:"workout_type"`
	Duration          float64  `json:"duration"`
	Distance          *float64 `json:"distance,omitempty"`
	AvgHR             *int     `json:"avg_hr,omitempty"`
	TrainingLoadScore float64  `json:"training_load_score"`
}

type SleepEntry struct {
	ID           int64   `json:"id"`
	Date         Date    `json:"date"`
	Hours        float64 `json:"hours"`
	QualityScore int     `json:"quality_score"`
}

type NutritionEntry struct {
	ID       int64   `json:"id"`
	Date     Date    `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Recommendation is the flattened form of the server's nested
// recommendation payload.
type Recommendation struct {
	Date            Date
	WorkoutType     string
	DurationMinutes int
	Intensity       string
	Description     string
	Warnings        []string
	Reasoning       string
}

// Snapshot is the composite analytics value for the dashboard. It is
// atomic: replaced wholesale on every fetch, never merged, so the view
// always shows data from a single point in time.
type Snapshot struct {
	Metrics              Metrics
	LatestRecommendation *Recommendation
	RecentWorkouts       []WorkoutEntry
	RecentSleep          []SleepEntry
	RecentNutrition      []NutritionEntry
}

// WeeklyActivity is one day's aggregate from /weekly-activity.
type WeeklyActivity struct {
	Day          string  `json:"day"`
	Duration     float64 `json:"duration"`
	TrainingLoad float64 `json:"training_load"`
	WorkoutCount int     `json:"workout_count"`
}

// Drafts submitted when logging entries. Optional numerics are typed
// pointers; parsing from form text happens once at the UI boundary.

type WorkoutDraft struct {
	Date        Date
	WorkoutType string
	Duration    float64
	Distance    *float64
	AvgHR       *int
}

type SleepDraft struct {
	Date         Date
	Hours        float64
	QualityScore int
}

type NutritionDraft struct {
	Date     Date
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
}

// ValidWorkoutType reports whether t is one of the backend's workout types.
func ValidWorkoutType(t string) bool {
	switch strings.ToLower(t) {
	case WorkoutEasy, WorkoutTempo, WorkoutInterval, WorkoutLong, WorkoutRace, WorkoutRest:
		return true
	}
	return false
}
