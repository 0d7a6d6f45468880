package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"endure/internal/modules/dashboard/domain"
	"endure/internal/modules/dashboard/dto"
	dashboardin "endure/internal/modules/dashboard/port/in"
	"endure/internal/modules/dashboard/service"
	"endure/internal/modules/dashboard/usecase"
	"endure/internal/platform/clock"
	apperrors "endure/internal/platform/errors"
	"endure/internal/platform/logging"
)

type fakeAPI struct {
	mu           sync.Mutex
	calls        []string
	snapshots    []domain.Snapshot
	snapshotErr  error
	regenerate   domain.Recommendation
	regenErr     error
	blockFetch   chan struct{} // when set, Snapshot waits for a signal
	fetchEntered chan struct{}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeAPI) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Snapshot(context.Context) (domain.Snapshot, error) {
	f.record("GET /dashboard")
	// Dequeue before blocking so concurrent calls take responses in
	// call order regardless of when they are released.
	f.mu.Lock()
	var snap domain.Snapshot
	if len(f.snapshots) > 0 {
		snap = f.snapshots[0]
		if len(f.snapshots) > 1 {
			f.snapshots = f.snapshots[1:]
		}
	}
	f.mu.Unlock()
	if f.blockFetch != nil {
		f.fetchEntered <- struct{}{}
		<-f.blockFetch
	}
	if f.snapshotErr != nil {
		return domain.Snapshot{}, f.snapshotErr
	}
	return snap, nil
}

func (f *fakeAPI) Regenerate(context.Context) (domain.Recommendation, error) {
	f.record("POST /recommend")
	if f.regenErr != nil {
		return domain.Recommendation{}, f.regenErr
	}
	return f.regenerate, nil
}

func (f *fakeAPI) LogWorkout(_ context.Context, draft domain.WorkoutDraft) (domain.WorkoutEntry, error) {
	f.record("POST /log-workout")
	return domain.WorkoutEntry{ID: 1, Date: draft.Date, WorkoutType: draft.WorkoutType, Duration: draft.Duration}, nil
}

func (f *fakeAPI) LogSleep(_ context.Context, draft domain.SleepDraft) (domain.SleepEntry, error) {
	f.record("POST /log-sleep")
	return domain.SleepEntry{ID: 1, Date: draft.Date, Hours: draft.Hours, QualityScore: draft.QualityScore}, nil
}

func (f *fakeAPI) LogNutrition(_ context.Context, draft domain.NutritionDraft) (domain.NutritionEntry, error) {
	f.record("POST /log-nutrition")
	return domain.NutritionEntry{ID: 1, Date: draft.Date, Calories: draft.Calories}, nil
}

func (f *fakeAPI) WeeklyActivity(context.Context) ([]domain.WeeklyActivity, error) {
	f.record("GET /weekly-activity")
	return []domain.WeeklyActivity{{Day: "Mon", Duration: 45, TrainingLoad: 80, WorkoutCount: 1}}, nil
}

func snapWithCTL(ctl float64) domain.Snapshot {
	return domain.Snapshot{Metrics: domain.Metrics{
		Fitness:  domain.Fitness{CTL: ctl},
		Form:     domain.Form{TSB: -10},
		Recovery: domain.Recovery{Score: 70},
	}}
}

func newTestDashboard(api *fakeAPI) (dashboardin.Usecase, *service.Holder) {
	holder := service.NewHolder(clock.SystemClock{}, logging.Discard())
	return usecase.NewInteractor(holder, api, logging.Discard()), holder
}

func TestFetchStoresSnapshotAndClassifies(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{snapshots: []domain.Snapshot{snapWithCTL(42)}}
	uc, _ := newTestDashboard(api)

	out, err := uc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if out.Metrics.CTL != 42 {
		t.Fatalf("unexpected ctl: %v", out.Metrics.CTL)
	}
	if out.Metrics.FormBand != "accent" || out.Metrics.RecoveryBand != "success" {
		t.Fatalf("bands not attached: %+v", out.Metrics)
	}

	state, err := uc.State(context.Background())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Snapshot == nil || state.LastError != "" {
		t.Fatalf("expected clean held snapshot, got %+v", state)
	}
}

func TestFetchFailureKeepsLastGoodSnapshot(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{snapshots: []domain.Snapshot{snapWithCTL(42)}}
	uc, _ := newTestDashboard(api)

	if _, err := uc.Fetch(context.Background()); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	api.snapshotErr = &apperrors.NetworkError{Op: "GET /dashboard", Err: errors.New("unreachable")}
	if _, err := uc.Fetch(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}

	state, _ := uc.State(context.Background())
	if state.Snapshot == nil || state.Snapshot.Metrics.CTL != 42 {
		t.Fatalf("stale snapshot must survive a failed refresh, got %+v", state.Snapshot)
	}
	if state.LastError == "" {
		t.Fatal("failed refresh must record an error indicator")
	}
}

func TestFetchFailureWithoutSnapshotYieldsErrorState(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{snapshotErr: &apperrors.NetworkError{Op: "GET /dashboard", Err: errors.New("unreachable")}}
	uc, _ := newTestDashboard(api)

	if _, err := uc.Fetch(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	state, _ := uc.State(context.Background())
	if state.Snapshot != nil {
		t.Fatal("no snapshot may appear after a failed first fetch")
	}
	if state.LastError == "" {
		t.Fatal("error state must be visible for the retry affordance")
	}
}

func TestConcurrentFetchIsSuppressedNotQueued(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{
		snapshots:    []domain.Snapshot{snapWithCTL(42)},
		blockFetch:   make(chan struct{}),
		fetchEntered: make(chan struct{}),
	}
	uc, _ := newTestDashboard(api)

	done := make(chan error, 1)
	go func() {
		_, err := uc.Fetch(context.Background())
		done <- err
	}()
	<-api.fetchEntered

	if _, err := uc.Fetch(context.Background()); !errors.Is(err, apperrors.ErrFetchInFlight) {
		t.Fatalf("expected ErrFetchInFlight, got %v", err)
	}

	close(api.blockFetch)
	if err := <-done; err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if got := len(api.callLog()); got != 1 {
		t.Fatalf("suppressed call must not reach the API, got %d calls", got)
	}
}

func TestRegenerateRefetchesExactlyOnceAfterCompletion(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{
		snapshots:  []domain.Snapshot{snapWithCTL(42)},
		regenerate: domain.Recommendation{WorkoutType: "tempo", DurationMinutes: 50, Intensity: "moderate"},
	}
	uc, _ := newTestDashboard(api)

	rec, err := uc.Regenerate(context.Background())
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if rec.WorkoutType != "tempo" {
		t.Fatalf("unexpected recommendation: %+v", rec)
	}
	calls := api.callLog()
	if len(calls) != 2 || calls[0] != "POST /recommend" || calls[1] != "GET /dashboard" {
		t.Fatalf("regenerate must be followed by exactly one refetch, got %v", calls)
	}
}

func TestRegeneratePreemptsInFlightFetch(t *testing.T) {
	t.Parallel()
	pre := snapWithCTL(10)
	pre.LatestRecommendation = &domain.Recommendation{WorkoutType: "easy"}
	post := snapWithCTL(11)
	post.LatestRecommendation = &domain.Recommendation{WorkoutType: "tempo"}
	api := &fakeAPI{
		snapshots:    []domain.Snapshot{pre, post},
		regenerate:   domain.Recommendation{WorkoutType: "tempo"},
		blockFetch:   make(chan struct{}),
		fetchEntered: make(chan struct{}, 2),
	}
	uc, _ := newTestDashboard(api)

	fetchDone := make(chan struct{})
	go func() {
		uc.Fetch(context.Background())
		close(fetchDone)
	}()
	<-api.fetchEntered

	regenDone := make(chan error, 1)
	go func() {
		_, err := uc.Regenerate(context.Background())
		regenDone <- err
	}()
	<-api.fetchEntered // the refetch ran despite the outstanding fetch

	close(api.blockFetch)
	<-fetchDone
	if err := <-regenDone; err != nil {
		t.Fatalf("regenerate: %v", err)
	}

	state, err := uc.State(context.Background())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Snapshot == nil || state.Snapshot.LatestRecommendation == nil {
		t.Fatal("snapshot missing after regenerate")
	}
	if got := state.Snapshot.LatestRecommendation.WorkoutType; got != "tempo" {
		t.Fatalf("pre-regenerate fetch won over the refetch, got %q", got)
	}
}

func TestRegenerateFailureLeavesDashboardUntouched(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{snapshots: []domain.Snapshot{snapWithCTL(42)}}
	uc, _ := newTestDashboard(api)
	if _, err := uc.Fetch(context.Background()); err != nil {
		t.Fatalf("seed fetch: %v", err)
	}

	api.regenErr = errors.New("model overloaded")
	_, err := uc.Regenerate(context.Background())
	var re *apperrors.RecommendationError
	if !errors.As(err, &re) {
		t.Fatalf("expected RecommendationError, got %v", err)
	}

	calls := api.callLog()
	if calls[len(calls)-1] != "POST /recommend" {
		t.Fatalf("no refetch may follow a failed regenerate, calls: %v", calls)
	}
	state, _ := uc.State(context.Background())
	if state.Snapshot == nil || state.Snapshot.Metrics.CTL != 42 {
		t.Fatal("held snapshot must be untouched by a failed regenerate")
	}
	if state.LastError != "" {
		t.Fatal("a regenerate failure is isolated to the widget, not the dashboard error state")
	}
}

func TestResetDiscardsInFlightResult(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{
		snapshots:    []domain.Snapshot{snapWithCTL(42)},
		blockFetch:   make(chan struct{}),
		fetchEntered: make(chan struct{}),
	}
	uc, _ := newTestDashboard(api)

	done := make(chan struct{})
	go func() {
		_, _ = uc.Fetch(context.Background())
		close(done)
	}()
	<-api.fetchEntered

	if err := uc.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	close(api.blockFetch)
	<-done

	state, _ := uc.State(context.Background())
	if state.Snapshot != nil {
		t.Fatal("a response from before the reset must be discarded")
	}
}

func TestLogWorkoutValidatesThenRefreshes(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{snapshots: []domain.Snapshot{snapWithCTL(42)}}
	uc, _ := newTestDashboard(api)

	_, err := uc.LogWorkout(context.Background(), dto.WorkoutInput{
		Date:        time.Now(),
		WorkoutType: "sprint",
		Duration:    30,
	})
	if !apperrors.IsValidation(err) {
		t.Fatalf("unknown workout type must be rejected, got %v", err)
	}
	if len(api.callLog()) != 0 {
		t.Fatal("rejected input must not reach the API")
	}

	out, err := uc.LogWorkout(context.Background(), dto.WorkoutInput{
		Date:        time.Now(),
		WorkoutType: "tempo",
		Duration:    30,
	})
	if err != nil {
		t.Fatalf("log workout: %v", err)
	}
	if out.WorkoutType != "tempo" {
		t.Fatalf("unexpected entry: %+v", out)
	}
	calls := api.callLog()
	if len(calls) != 2 || calls[0] != "POST /log-workout" || calls[1] != "GET /dashboard" {
		t.Fatalf("logging must trigger one refresh, got %v", calls)
	}
}

func TestLogSleepRejectsOutOfRangeQuality(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{}
	uc, _ := newTestDashboard(api)

	for _, quality := range []int{0, 11} {
		_, err := uc.LogSleep(context.Background(), dto.SleepInput{Date: time.Now(), Hours: 8, QualityScore: quality})
		if !apperrors.IsValidation(err) {
			t.Fatalf("quality %d must be rejected, got %v", quality, err)
		}
	}
	if len(api.callLog()) != 0 {
		t.Fatal("rejected input must not reach the API")
	}
}

func TestWeeklyActivityMapsAggregates(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{}
	uc, _ := newTestDashboard(api)

	days, err := uc.WeeklyActivity(context.Background())
	if err != nil {
		t.Fatalf("weekly activity: %v", err)
	}
	if len(days) != 1 || days[0].Day != "Mon" || days[0].TrainingLoad != 80 {
		t.Fatalf("unexpected aggregates: %+v", days)
	}
}
