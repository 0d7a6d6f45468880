package service

import (
	"log/slog"
	"sync"
	"time"

	"endure/internal/modules/dashboard/domain"
	"endure/internal/platform/clock"
)

// Holder is the single source of truth for the dashboard snapshot. It keeps
// exactly one last-good snapshot in memory: no TTL, no background refresh,
// no partial merges.
//
// Two guards protect it: a boolean in-flight flag that suppresses a second
// concurrent fetch, and a generation counter so a response that resolves
// after the holder moved on (newer fetch, or a reset on logout) is
// discarded instead of overwriting current state.
type Holder struct {
	mu        sync.Mutex
	snap      *domain.Snapshot
	err       error
	inFlight  bool
	gen       uint64
	fetchedAt time.Time
	clk       clock.Clock
	log       *slog.Logger
}

func NewHolder(clk clock.Clock, log *slog.Logger) *Holder {
	return &Holder{clk: clk, log: log}
}

// Begin claims the in-flight slot. ok is false when a fetch is already
// outstanding; otherwise the returned generation must be handed back to
// Complete.
func (h *Holder) Begin() (gen uint64, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inFlight {
		return 0, false
	}
	h.inFlight = true
	h.gen++
	return h.gen, true
}

// BeginPreempt claims the fetch slot even when one is outstanding, bumping
// the generation so the superseded response is discarded when it arrives.
// Used when a fetch must not be suppressed, such as the refresh after a
// recommendation regenerate.
func (h *Holder) BeginPreempt() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inFlight = true
	h.gen++
	return h.gen
}

// Complete applies a fetch result. A stale generation is dropped entirely;
// on failure the previous snapshot, if any, stays available.
func (h *Holder) Complete(gen uint64, snap domain.Snapshot, err error) (applied bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.gen {
		h.log.Debug("discarding stale snapshot response", "gen", gen, "current", h.gen)
		return false
	}
	h.inFlight = false
	if err != nil {
		h.err = err
		return false
	}
	h.snap = &snap
	h.err = nil
	h.fetchedAt = h.clk.Now()
	return true
}

// Snapshot returns a copy of the held snapshot, if one has ever loaded.
func (h *Holder) Snapshot() (domain.Snapshot, time.Time, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.snap == nil {
		return domain.Snapshot{}, time.Time{}, false
	}
	return *h.snap, h.fetchedAt, true
}

func (h *Holder) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Holder) InFlight() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inFlight
}

// Reset drops everything and bumps the generation so an in-flight result
// cannot resurrect pre-reset state.
func (h *Holder) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snap = nil
	h.err = nil
	h.inFlight = false
	h.gen++
	h.fetchedAt = time.Time{}
}
