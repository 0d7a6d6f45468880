package out_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"endure/internal/modules/dashboard/adapter/out"
	"endure/internal/modules/dashboard/domain"
	dashboardout "endure/internal/modules/dashboard/port/out"
	"endure/internal/platform/logging"
	"endure/internal/platform/rest"
)

type noTokens struct{}

func (noTokens) Token() (string, bool) { return "", false }

type seqIDs struct{}

func (seqIDs) New() string { return "req-test" }

func newAPI(srv *httptest.Server) dashboardout.API {
	client := rest.NewClient(srv.URL, 5*time.Second, noTokens{}, seqIDs{}, logging.Discard())
	return out.NewHTTPAPI(client)
}

const dashboardBody = `{
  "metrics": {
    "fitness": {"ctl": 52.4},
    "fatigue": {"atl": 61.0},
    "form": {"tsb": -8.6, "status": "Fresh"},
    "recovery": {"recovery_score": 72, "recommendation": "Ready for quality work"},
    "weekly_training_load": 310.5
  },
  "latest_recommendation": {
    "date": "2026-08-29",
    "recommendation_json": {
      "workout_type": "tempo",
      "duration_minutes": 50,
      "intensity": "moderate",
      "description": "Steady tempo block",
      "warnings": ["hydrate early"]
    },
    "reasoning_summary": "Form trending positive"
  },
  "recent_workouts": [
    {"id": 7, "date": "2026-08-28", "workout_type": "easy", "duration": 40, "training_load_score": 55}
  ],
  "recent_sleep": [
    {"id": 3, "date": "2026-08-28", "hours": 7.5, "quality_score": 8}
  ],
  "recent_nutrition": []
}`

func TestSnapshotDecodesAndFlattensRecommendation(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(dashboardBody))
	}))
	defer srv.Close()

	snap, err := newAPI(srv).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Metrics.Fitness.CTL != 52.4 || snap.Metrics.Recovery.Score != 72 {
		t.Fatalf("metrics not decoded: %+v", snap.Metrics)
	}
	if snap.Metrics.Recovery.Advice != "Ready for quality work" {
		t.Fatalf("recovery advice lost: %q", snap.Metrics.Recovery.Advice)
	}

	rec := snap.LatestRecommendation
	if rec == nil {
		t.Fatal("recommendation missing")
	}
	if rec.WorkoutType != "tempo" || rec.DurationMinutes != 50 {
		t.Fatalf("nested plan not flattened: %+v", rec)
	}
	if rec.Reasoning != "Form trending positive" {
		t.Fatalf("reasoning summary lost: %q", rec.Reasoning)
	}
	if got := rec.Date.Format("2006-01-02"); got != "2026-08-29" {
		t.Fatalf("date not parsed: %s", got)
	}
	if len(snap.RecentWorkouts) != 1 || snap.RecentWorkouts[0].Duration != 40 {
		t.Fatalf("workouts not decoded: %+v", snap.RecentWorkouts)
	}
}

func TestSnapshotAcceptsLegacyRecoveryField(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"metrics":{"recovery":{"score":55}}}`))
	}))
	defer srv.Close()

	snap, err := newAPI(srv).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Metrics.Recovery.Score != 55 {
		t.Fatalf("legacy score field not honoured: %+v", snap.Metrics.Recovery)
	}
}

func TestRegenerateFlattensResponse(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommend" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{
			"date": "2026-08-30",
			"recommendation_json": {"workout_type": "interval", "duration_minutes": 45, "intensity": "hard"},
			"reasoning_summary": "Fatigue low"
		}`))
	}))
	defer srv.Close()

	rec, err := newAPI(srv).Regenerate(context.Background())
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if rec.WorkoutType != "interval" || rec.Intensity != "hard" || rec.Reasoning != "Fatigue low" {
		t.Fatalf("unexpected recommendation: %+v", rec)
	}
}

func TestLogWorkoutSendsDayPrecisionDate(t *testing.T) {
	t.Parallel()
	var sent map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/log-workout" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"id": 9, "date": "2026-08-30", "workout_type": "tempo", "duration": 50, "training_load_score": 74}`))
	}))
	defer srv.Close()

	day := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
	entry, err := newAPI(srv).LogWorkout(context.Background(), domain.WorkoutDraft{
		Date:        domain.Date{Time: day},
		WorkoutType: "tempo",
		Duration:    50,
	})
	if err != nil {
		t.Fatalf("log workout: %v", err)
	}
	if sent["date"] != "2026-08-30" {
		t.Fatalf("date must serialise day-precision, got %v", sent["date"])
	}
	if _, present := sent["distance"]; present {
		t.Fatal("unset optional fields must be omitted")
	}
	if entry.ID != 9 || entry.TrainingLoadScore != 74 {
		t.Fatalf("created entry not decoded: %+v", entry)
	}
}

func TestWeeklyActivityUnwrapsEnvelope(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weekly-activity" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"weekly_activity": [
			{"day": "Mon", "duration": 45, "training_load": 72, "workout_count": 1},
			{"day": "Tue", "duration": 0, "training_load": 0, "workout_count": 0}
		]}`))
	}))
	defer srv.Close()

	days, err := newAPI(srv).WeeklyActivity(context.Background())
	if err != nil {
		t.Fatalf("weekly activity: %v", err)
	}
	if len(days) != 2 || days[0].Day != "Mon" || days[0].TrainingLoad != 72 {
		t.Fatalf("unexpected days: %+v", days)
	}
}
