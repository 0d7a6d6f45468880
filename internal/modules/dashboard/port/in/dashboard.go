package in

import (
	"context"

	"endure/internal/modules/dashboard/dto"
)

type Usecase interface {
	// Fetch issues one snapshot request. While one is in flight a second
	// call returns apperrors.ErrFetchInFlight instead of queueing.
	Fetch(ctx context.Context) (dto.SnapshotOutput, error)
	// State reads the held snapshot and error without touching the network.
	State(ctx context.Context) (dto.StateOutput, error)
	// Regenerate asks the server for a fresh recommendation, then - only
	// after that call succeeds - refreshes the snapshot exactly once.
	Regenerate(ctx context.Context) (dto.RecommendationOutput, error)
	LogWorkout(ctx context.Context, input dto.WorkoutInput) (dto.WorkoutOutput, error)
	LogSleep(ctx context.Context, input dto.SleepInput) (dto.SleepOutput, error)
	LogNutrition(ctx context.Context, input dto.NutritionInput) (dto.NutritionOutput, error)
	WeeklyActivity(ctx context.Context) ([]dto.WeeklyActivityOutput, error)
	// Reset drops all held state; pending fetch results are discarded.
	Reset(ctx context.Context) error
}
