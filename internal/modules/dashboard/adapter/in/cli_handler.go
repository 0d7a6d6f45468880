package in

import (
	"context"

	"endure/internal/modules/dashboard/dto"
	dashboardin "endure/internal/modules/dashboard/port/in"
)

type CLIHandler struct {
	usecase dashboardin.Usecase
}

func NewCLIHandler(usecase dashboardin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Fetch(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.Fetch(ctx)
}

func (h CLIHandler) Regenerate(ctx context.Context) (dto.RecommendationOutput, error) {
	return h.usecase.Regenerate(ctx)
}

func (h CLIHandler) LogWorkout(ctx context.Context, input dto.WorkoutInput) (dto.WorkoutOutput, error) {
	return h.usecase.LogWorkout(ctx, input)
}

func (h CLIHandler) LogSleep(ctx context.Context, input dto.SleepInput) (dto.SleepOutput, error) {
	return h.usecase.LogSleep(ctx, input)
}

func (h CLIHandler) LogNutrition(ctx context.Context, input dto.NutritionInput) (dto.NutritionOutput, error) {
	return h.usecase.LogNutrition(ctx, input)
}

func (h CLIHandler) WeeklyActivity(ctx context.Context) ([]dto.WeeklyActivityOutput, error) {
	return h.usecase.WeeklyActivity(ctx)
}
