package out

import (
	"context"

	"endure/internal/modules/dashboard/domain"
)

// API is the backend's analytics and logging surface.
type API interface {
	Snapshot(ctx context.Context) (domain.Snapshot, error)
	Regenerate(ctx context.Context) (domain.Recommendation, error)
	LogWorkout(ctx context.Context, draft domain.WorkoutDraft) (domain.WorkoutEntry, error)
	LogSleep(ctx context.Context, draft domain.SleepDraft) (domain.SleepEntry, error)
	LogNutrition(ctx context.Context, draft domain.NutritionDraft) (domain.NutritionEntry, error)
	WeeklyActivity(ctx context.Context) ([]domain.WeeklyActivity, error)
}
