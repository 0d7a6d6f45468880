package out

import (
	"context"
	"encoding/json"

	"endure/internal/modules/dashboard/domain"
	dashboardout "endure/internal/modules/dashboard/port/out"
	"endure/internal/platform/rest"
)

// HTTPAPI talks to the backend's analytics and log endpoints, translating
// wire shapes into domain values at this boundary.
type HTTPAPI struct {
	client *rest.Client
}

func NewHTTPAPI(client *rest.Client) dashboardout.API {
	return &HTTPAPI{client: client}
}

// recommendationWire is the server's nested shape: the actual plan lives
// under recommendation_json next to row metadata.
type recommendationWire struct {
	Date               domain.Date     `json:"date"`
	RecommendationJSON json.RawMessage `json:"recommendation_json"`
	ReasoningSummary   string          `json:"reasoning_summary"`
}

type recommendationBody struct {
	WorkoutType     string   `json:"workout_type"`
	DurationMinutes int      `json:"duration_minutes"`
	Intensity       string   `json:"intensity"`
	Description     string   `json:"description"`
	Warnings        []string `json:"warnings"`
}

func (w recommendationWire) flatten() (domain.Recommendation, error) {
	rec := domain.Recommendation{
		Date:      w.Date,
		Reasoning: w.ReasoningSummary,
	}
	if len(w.RecommendationJSON) == 0 {
		return rec, nil
	}
	var body recommendationBody
	if err := json.Unmarshal(w.RecommendationJSON, &body); err != nil {
		return domain.Recommendation{}, err
	}
	rec.WorkoutType = body.WorkoutType
	rec.DurationMinutes = body.DurationMinutes
	rec.Intensity = body.Intensity
	rec.Description = body.Description
	rec.Warnings = body.Warnings
	return rec, nil
}

type snapshotWire struct {
	Metrics              domain.Metrics          `json:"metrics"`
	LatestRecommendation *recommendationWire     `json:"latest_recommendation"`
	RecentWorkouts       []domain.WorkoutEntry   `json:"recent_workouts"`
	RecentSleep          []domain.SleepEntry     `json:"recent_sleep"`
	RecentNutrition      []domain.NutritionEntry `json:"recent_nutrition"`
}

func (a *HTTPAPI) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	var wire snapshotWire
	if err := a.client.Get(ctx, "/dashboard", &wire); err != nil {
		return domain.Snapshot{}, err
	}
	snap := domain.Snapshot{
		Metrics:         wire.Metrics,
		RecentWorkouts:  wire.RecentWorkouts,
		RecentSleep:     wire.RecentSleep,
		RecentNutrition: wire.RecentNutrition,
	}
	if wire.LatestRecommendation != nil {
		rec, err := wire.LatestRecommendation.flatten()
		if err != nil {
			return domain.Snapshot{}, err
		}
		snap.LatestRecommendation = &rec
	}
	return snap, nil
}

func (a *HTTPAPI) Regenerate(ctx context.Context) (domain.Recommendation, error) {
	var wire recommendationWire
	if err := a.client.Post(ctx, "/recommend", nil, &wire); err != nil {
		return domain.Recommendation{}, err
	}
	return wire.flatten()
}

type workoutRequest struct {
	Date        domain.Date `json:"date"`
	WorkoutType string      `json:"workout_type"`
	Duration    float64     `json:"duration"`
	Distance    *float64    `json:"distance,omitempty"`
	AvgHR       *int        `json:"avg_hr,omitempty"`
}

func (a *HTTPAPI) LogWorkout(ctx context.Context, draft domain.WorkoutDraft) (domain.WorkoutEntry, error) {
	var out domain.WorkoutEntry
	err := a.client.Post(ctx, "/log-workout", workoutRequest{
		Date:        draft.Date,
		WorkoutType: draft.WorkoutType,
		Duration:    draft.Duration,
		Distance:    draft.Distance,
		AvgHR:       draft.AvgHR,
	}, &out)
	if err != nil {
		return domain.WorkoutEntry{}, err
	}
	return out, nil
}

type sleepRequest struct {
	Date         domain.Date `json:"date"`
	Hours        float64     `json:"hours"`
	QualityScore int         `json:"quality_score"`
}

func (a *HTTPAPI) LogSleep(ctx context.Context, draft domain.SleepDraft) (domain.SleepEntry, error) {
	var out domain.SleepEntry
	err := a.client.Post(ctx, "/log-sleep", sleepRequest{
		Date:         draft.Date,
		Hours:        draft.Hours,
		QualityScore: draft.QualityScore,
	}, &out)
	if err != nil {
		return domain.SleepEntry{}, err
	}
	return out, nil
}

type nutritionRequest struct {
	Date     domain.Date `json:"date"`
	Calories float64     `json:"calories"`
	Protein  float64     `json:"protein"`
	Carbs    float64     `json:"carbs"`
	Fats     float64     `json:"fats"`
}

func (a *HTTPAPI) LogNutrition(ctx context.Context, draft domain.NutritionDraft) (domain.NutritionEntry, error) {
	var out domain.NutritionEntry
	err := a.client.Post(ctx, "/log-nutrition", nutritionRequest{
		Date:     draft.Date,
		Calories: draft.Calories,
		Protein:  draft.Protein,
		Carbs:    draft.Carbs,
		Fats:     draft.Fats,
	}, &out)
	if err != nil {
		return domain.NutritionEntry{}, err
	}
	return out, nil
}

type weeklyActivityResponse struct {
	WeeklyActivity []domain.WeeklyActivity `json:"weekly_activity"`
}

func (a *HTTPAPI) WeeklyActivity(ctx context.Context) ([]domain.WeeklyActivity, error) {
	var out weeklyActivityResponse
	if err := a.client.Get(ctx, "/weekly-activity", &out); err != nil {
		return nil, err
	}
	return out.WeeklyActivity, nil
}
