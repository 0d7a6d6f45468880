package service_test

import (
	"errors"
	"testing"
	"time"

	"endure/internal/modules/dashboard/domain"
	"endure/internal/modules/dashboard/service"
	"endure/internal/platform/logging"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func testSnapshot(ctl float64) domain.Snapshot {
	return domain.Snapshot{Metrics: domain.Metrics{Fitness: domain.Fitness{CTL: ctl}}}
}

func TestHolderSingleFlight(t *testing.T) {
	t.Parallel()
	h := service.NewHolder(fixedClock{at: time.Unix(100, 0)}, logging.Discard())

	gen, ok := h.Begin()
	if !ok {
		t.Fatal("first Begin must win")
	}
	if _, ok := h.Begin(); ok {
		t.Fatal("second Begin must be suppressed while a fetch is running")
	}
	if !h.InFlight() {
		t.Fatal("InFlight must report the running fetch")
	}

	if applied := h.Complete(gen, testSnapshot(10), nil); !applied {
		t.Fatal("completing the current generation must apply")
	}
	if h.InFlight() {
		t.Fatal("completion must clear the in-flight flag")
	}
	snap, fetchedAt, ok := h.Snapshot()
	if !ok || snap.Metrics.Fitness.CTL != 10 {
		t.Fatalf("snapshot not stored: %+v ok=%v", snap, ok)
	}
	if !fetchedAt.Equal(time.Unix(100, 0)) {
		t.Fatalf("fetchedAt not stamped from clock: %v", fetchedAt)
	}
}

func TestHolderFailureKeepsPreviousSnapshot(t *testing.T) {
	t.Parallel()
	h := service.NewHolder(fixedClock{at: time.Unix(100, 0)}, logging.Discard())

	gen, _ := h.Begin()
	h.Complete(gen, testSnapshot(10), nil)

	gen, _ = h.Begin()
	h.Complete(gen, domain.Snapshot{}, errors.New("server down"))

	snap, _, ok := h.Snapshot()
	if !ok || snap.Metrics.Fitness.CTL != 10 {
		t.Fatalf("previous snapshot must survive, got %+v ok=%v", snap, ok)
	}
	if h.Err() == nil {
		t.Fatal("failure must be recorded alongside the kept snapshot")
	}

	gen, _ = h.Begin()
	h.Complete(gen, testSnapshot(20), nil)
	if h.Err() != nil {
		t.Fatal("a successful completion must clear the recorded error")
	}
}

func TestHolderPreemptInvalidatesOutstandingGeneration(t *testing.T) {
	t.Parallel()
	h := service.NewHolder(fixedClock{at: time.Unix(100, 0)}, logging.Discard())

	stale, _ := h.Begin()
	gen := h.BeginPreempt()

	if applied := h.Complete(stale, testSnapshot(10), nil); applied {
		t.Fatal("a superseded completion must be discarded")
	}
	if applied := h.Complete(gen, testSnapshot(20), nil); !applied {
		t.Fatal("the preempting completion must apply")
	}
	snap, _, ok := h.Snapshot()
	if !ok || snap.Metrics.Fitness.CTL != 20 {
		t.Fatalf("preempting snapshot not stored, got %+v ok=%v", snap, ok)
	}
	if h.InFlight() {
		t.Fatal("preempting completion must clear the in-flight flag")
	}
}

func TestHolderResetInvalidatesInFlightGeneration(t *testing.T) {
	t.Parallel()
	h := service.NewHolder(fixedClock{at: time.Unix(100, 0)}, logging.Discard())

	gen, _ := h.Begin()
	h.Reset()

	if applied := h.Complete(gen, testSnapshot(10), nil); applied {
		t.Fatal("a completion from before Reset must be discarded")
	}
	if _, _, ok := h.Snapshot(); ok {
		t.Fatal("no snapshot may exist after Reset")
	}
	if h.InFlight() {
		t.Fatal("Reset must clear the in-flight flag")
	}
}
