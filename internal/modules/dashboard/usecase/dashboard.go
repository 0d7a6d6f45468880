package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"endure/internal/modules/dashboard/domain"
	"endure/internal/modules/dashboard/dto"
	dashboardin "endure/internal/modules/dashboard/port/in"
	dashboardout "endure/internal/modules/dashboard/port/out"
	"endure/internal/modules/dashboard/service"
	apperrors "endure/internal/platform/errors"
)

type Interactor struct {
	holder   *service.Holder
	api      dashboardout.API
	validate *validator.Validate
	log      *slog.Logger
}

func NewInteractor(holder *service.Holder, api dashboardout.API, log *slog.Logger) dashboardin.Usecase {
	return &Interactor{
		holder:   holder,
		api:      api,
		validate: validator.New(),
		log:      log,
	}
}

func (i *Interactor) Fetch(ctx context.Context) (dto.SnapshotOutput, error) {
	gen, ok := i.holder.Begin()
	if !ok {
		return dto.SnapshotOutput{}, apperrors.ErrFetchInFlight
	}
	return i.fetchWith(ctx, gen)
}

func (i *Interactor) fetchWith(ctx context.Context, gen uint64) (dto.SnapshotOutput, error) {
	snap, err := i.api.Snapshot(ctx)
	i.holder.Complete(gen, snap, err)
	if err != nil {
		i.log.Warn("snapshot fetch failed", "err", err)
		return dto.SnapshotOutput{}, err
	}

	current, fetchedAt, ok := i.holder.Snapshot()
	if !ok {
		// The holder was reset while this fetch was in flight.
		return dto.SnapshotOutput{}, apperrors.ErrNoSnapshot
	}
	return snapshotOutput(current, fetchedAt), nil
}

func (i *Interactor) State(_ context.Context) (dto.StateOutput, error) {
	state := dto.StateOutput{InFlight: i.holder.InFlight()}
	if snap, fetchedAt, ok := i.holder.Snapshot(); ok {
		out := snapshotOutput(snap, fetchedAt)
		state.Snapshot = &out
	}
	if err := i.holder.Err(); err != nil {
		state.LastError = err.Error()
	}
	return state, nil
}

// Regenerate sequences the two halves strictly: the refetch starts only
// after the regenerate call has completed successfully, so the dashboard
// can never show a recommendation older than one it just requested. The
// refetch preempts any fetch already in flight; that earlier response
// predates the regeneration and must not settle as the held snapshot.
func (i *Interactor) Regenerate(ctx context.Context) (dto.RecommendationOutput, error) {
	rec, err := i.api.Regenerate(ctx)
	if err != nil {
		return dto.RecommendationOutput{}, &apperrors.RecommendationError{Err: err}
	}

	if _, err := i.fetchWith(ctx, i.holder.BeginPreempt()); err != nil {
		// Regeneration itself succeeded; a failed refresh leaves the
		// stale-but-available snapshot in place per the fetch contract.
		i.log.Warn("post-regenerate refresh failed", "err", err)
	}
	return recommendationOutput(rec), nil
}

func (i *Interactor) LogWorkout(ctx context.Context, input dto.WorkoutInput) (dto.WorkoutOutput, error) {
	if err := i.validate.Struct(input); err != nil {
		return dto.WorkoutOutput{}, &apperrors.ValidationError{Detail: err.Error()}
	}
	entry, err := i.api.LogWorkout(ctx, domain.WorkoutDraft{
		Date:        domain.Date{Time: input.Date},
		WorkoutType: input.WorkoutType,
		Duration:    input.Duration,
		Distance:    input.Distance,
		AvgHR:       input.AvgHR,
	})
	if err != nil {
		return dto.WorkoutOutput{}, err
	}
	i.refreshAfterLog(ctx)
	return workoutOutput(entry), nil
}

func (i *Interactor) LogSleep(ctx context.Context, input dto.SleepInput) (dto.SleepOutput, error) {
	if err := i.validate.Struct(input); err != nil {
		return dto.SleepOutput{}, &apperrors.ValidationError{Detail: err.Error()}
	}
	entry, err := i.api.LogSleep(ctx, domain.SleepDraft{
		Date:         domain.Date{Time: input.Date},
		Hours:        input.Hours,
		QualityScore: input.QualityScore,
	})
	if err != nil {
		return dto.SleepOutput{}, err
	}
	i.refreshAfterLog(ctx)
	return sleepOutput(entry), nil
}

func (i *Interactor) LogNutrition(ctx context.Context, input dto.NutritionInput) (dto.NutritionOutput, error) {
	if err := i.validate.Struct(input); err != nil {
		return dto.NutritionOutput{}, &apperrors.ValidationError{Detail: err.Error()}
	}
	entry, err := i.api.LogNutrition(ctx, domain.NutritionDraft{
		Date:     domain.Date{Time: input.Date},
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fats:     input.Fats,
	})
	if err != nil {
		return dto.NutritionOutput{}, err
	}
	i.refreshAfterLog(ctx)
	return nutritionOutput(entry), nil
}

func (i *Interactor) WeeklyActivity(ctx context.Context) ([]dto.WeeklyActivityOutput, error) {
	days, err := i.api.WeeklyActivity(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WeeklyActivityOutput, len(days))
	for n, d := range days {
		out[n] = dto.WeeklyActivityOutput{
			Day:          d.Day,
			Duration:     d.Duration,
			TrainingLoad: d.TrainingLoad,
			WorkoutCount: d.WorkoutCount,
		}
	}
	return out, nil
}

func (i *Interactor) Reset(_ context.Context) error {
	i.holder.Reset()
	return nil
}

// refreshAfterLog pulls a new snapshot so derived metrics reflect the entry
// just written. A failure here keeps the stale snapshot; the next view
// interaction offers retry.
func (i *Interactor) refreshAfterLog(ctx context.Context) {
	if _, err := i.Fetch(ctx); err != nil {
		i.log.Warn("refresh after log failed", "err", err)
	}
}

// ─── dto mapping ─────────────────────────────────────────────────────────────

func snapshotOutput(snap domain.Snapshot, fetchedAt time.Time) dto.SnapshotOutput {
	out := dto.SnapshotOutput{
		Metrics: dto.MetricsOutput{
			CTL:            snap.Metrics.Fitness.CTL,
			ATL:            snap.Metrics.Fatigue.ATL,
			TSB:            snap.Metrics.Form.TSB,
			FormStatus:     snap.Metrics.Form.Status,
			FormBand:       domain.FormBand(snap.Metrics.Form.TSB).String(),
			RecoveryScore:  snap.Metrics.Recovery.Score,
			RecoveryBand:   domain.RecoveryBand(snap.Metrics.Recovery.Score).String(),
			RecoveryAdvice: snap.Metrics.Recovery.Advice,
			WeeklyLoad:     snap.Metrics.WeeklyLoad,
		},
		FetchedAt: fetchedAt,
	}
	if snap.LatestRecommendation != nil {
		rec := recommendationOutput(*snap.LatestRecommendation)
		out.LatestRecommendation = &rec
	}
	out.RecentWorkouts = make([]dto.WorkoutOutput, len(snap.RecentWorkouts))
	for n, w := range snap.RecentWorkouts {
		out.RecentWorkouts[n] = workoutOutput(w)
	}
	out.RecentSleep = make([]dto.SleepOutput, len(snap.RecentSleep))
	for n, s := range snap.RecentSleep {
		out.RecentSleep[n] = sleepOutput(s)
	}
	out.RecentNutrition = make([]dto.NutritionOutput, len(snap.RecentNutrition))
	for n, e := range snap.RecentNutrition {
		out.RecentNutrition[n] = nutritionOutput(e)
	}
	return out
}

func recommendationOutput(rec domain.Recommendation) dto.RecommendationOutput {
	return dto.RecommendationOutput{
		Date:            rec.Date.Time,
		WorkoutType:     rec.WorkoutType,
		DurationMinutes: rec.DurationMinutes,
		Intensity:       rec.Intensity,
		Description:     rec.Description,
		Warnings:        rec.Warnings,
		Reasoning:       rec.Reasoning,
	}
}

func workoutOutput(w domain.WorkoutEntry) dto.WorkoutOutput {
	return dto.WorkoutOutput{
		ID:                w.ID,
		Date:              w.Date.Time,
		WorkoutType:       w.WorkoutType,
		Duration:          w.Duration,
		Distance:          w.Distance,
		AvgHR:             w.AvgHR,
		TrainingLoadScore: w.TrainingLoadScore,
	}
}

func sleepOutput(s domain.SleepEntry) dto.SleepOutput {
	return dto.SleepOutput{
		ID:           s.ID,
		Date:         s.Date.Time,
		Hours:        s.Hours,
		QualityScore: s.QualityScore,
	}
}

func nutritionOutput(e domain.NutritionEntry) dto.NutritionOutput {
	return dto.NutritionOutput{
		ID:       e.ID,
		Date:     e.Date.Time,
		Calories: e.Calories,
		Protein:  e.Protein,
		Carbs:    e.Carbs,
		Fats:     e.Fats,
	}
}
