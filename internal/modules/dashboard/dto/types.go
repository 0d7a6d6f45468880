package dto

import "time"

// Outputs carry display-ready values: classification bands are attached
// here so views never touch the raw numbers' thresholds.

type MetricsOutput struct {
	CTL            float64
	ATL            float64
	TSB            float64
	FormStatus     string
	FormBand       string
	RecoveryScore  float64
	RecoveryBand   string
	RecoveryAdvice string
	WeeklyLoad     float64
}

type RecommendationOutput struct {
	Date            time.Time
	WorkoutType     string
	DurationMinutes int
	Intensity       string
	Description     string
	Warnings        []string
	Reasoning       string
}

type WorkoutOutput struct {
	ID                int64
	Date              time.Time
	WorkoutType       string
	Duration          float64
	Distance          *float64
	AvgHR             *int
	TrainingLoadScore float64
}

type SleepOutput struct {
	ID           int64
	Date         time.Time
	Hours        float64
	QualityScore int
}

type NutritionOutput struct {
	ID       int64
	Date     time.Time
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
}

type SnapshotOutput struct {
	Metrics              MetricsOutput
	LatestRecommendation *RecommendationOutput
	RecentWorkouts       []WorkoutOutput
	RecentSleep          []SleepOutput
	RecentNutrition      []NutritionOutput
	FetchedAt            time.Time
}

// StateOutput is the controller's full view state: the last-good snapshot
// (if any), the last fetch error (if any), and whether a fetch is running.
type StateOutput struct {
	Snapshot  *SnapshotOutput
	LastError string
	InFlight  bool
}

type WeeklyActivityOutput struct {
	Day          string
	Duration     float64
	TrainingLoad float64
	WorkoutCount int
}

// Inputs for the log endpoints. Validation happens at the usecase boundary.

type WorkoutInput struct {
	Date        time.Time `validate:"required"`
	WorkoutType string    `validate:"required,oneof=easy tempo interval long race rest"`
	Duration    float64   `validate:"required,gt=0"`
	Distance    *float64  `validate:"omitempty,gt=0"`
	AvgHR       *int      `validate:"omitempty,gt=0,lt=250"`
}

type SleepInput struct {
	Date         time.Time `validate:"required"`
	Hours        float64   `validate:"required,gt=0,lte=24"`
	QualityScore int       `validate:"required,gte=1,lte=10"`
}

type NutritionInput struct {
	Date     time.Time `validate:"required"`
	Calories float64   `validate:"required,gt=0"`
	Protein  float64   `validate:"gte=0"`
	Carbs    float64   `validate:"gte=0"`
	Fats     float64   `validate:"gte=0"`
}
