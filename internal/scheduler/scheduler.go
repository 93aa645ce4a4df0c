// Package scheduler drives the poll loop: a singleton {Stopped, Running}
// state machine whose recurring timer is the sole source of work.
//
// Two invariants hold regardless of what a cycle does: the next timer is
// always re-armed while running — a failed or panicking cycle cannot stop
// monitoring — and no two cycles ever run concurrently, enforced by a run
// mutex rather than assumed from the runtime.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ahump20/blaze-live/internal/metrics"
	"github.com/ahump20/blaze-live/internal/poll"
)

// firstPollDelay is how soon after Start the first cycle fires.
const firstPollDelay = time.Second

// CycleFunc runs one poll cycle.
type CycleFunc func(ctx context.Context) (poll.CycleResult, error)

// StateStore persists the active flag and poll bookkeeping across restarts.
type StateStore interface {
	SetActive(ctx context.Context, active bool) error
	RecordPoll(ctx context.Context) error
}

// Status is the snapshot returned by Status. Safe to request while a cycle
// is running.
type Status struct {
	Active    bool       `json:"active"`
	LastPoll  *time.Time `json:"last_poll,omitempty"`
	PollCount int64      `json:"poll_count"`
	Interval  string     `json:"poll_interval"`
}

// Scheduler is the singleton monitor driver.
type Scheduler struct {
	cycle    CycleFunc
	state    StateStore
	interval time.Duration
	logger   *slog.Logger

	// baseCtx bounds all cycle work; cancelling it ends the scheduler for
	// good during shutdown.
	baseCtx context.Context

	mu        sync.Mutex // guards the fields below
	active    bool
	gen       uint64 // bumped on Start/Stop; stale timer chains see an old value
	timer     *time.Timer
	pollCount int64
	lastPoll  time.Time

	runMu sync.Mutex // single-flight guarantee for cycles
}

// New creates a stopped scheduler.
func New(ctx context.Context, cycle CycleFunc, state StateStore, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cycle:    cycle,
		state:    state,
		interval: interval,
		logger:   logger,
		baseCtx:  ctx,
	}
}

// Start sets the scheduler running and arms the first cycle shortly out.
// It persists the active flag and returns without waiting for the first
// poll. Starting a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return nil
	}
	if err := s.state.SetActive(ctx, true); err != nil {
		return err
	}
	s.active = true
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(firstPollDelay, func() { s.onTimer(gen) })
	metrics.SchedulerActive.Set(1)
	s.logger.Info("Scheduler started", "interval", s.interval, "first_poll_in", firstPollDelay)
	return nil
}

// Stop halts the scheduler and cancels any pending timer. The active flag
// is persisted; an in-flight cycle finishes but nothing is re-armed after
// it. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return nil
	}
	if err := s.state.SetActive(ctx, false); err != nil {
		return err
	}
	s.active = false
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	metrics.SchedulerActive.Set(0)
	s.logger.Info("Scheduler stopped")
	return nil
}

// Status returns the current scheduler snapshot.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		Active:    s.active,
		PollCount: s.pollCount,
		Interval:  s.interval.String(),
	}
	if !s.lastPoll.IsZero() {
		t := s.lastPoll
		st.LastPoll = &t
	}
	return st
}

// Interval returns the configured poll interval.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Resume restores persisted bookkeeping and restarts the scheduler if it
// was active when the previous process exited.
func (s *Scheduler) Resume(ctx context.Context, wasActive bool, pollCount int64, lastPoll *time.Time) error {
	s.mu.Lock()
	s.pollCount = pollCount
	if lastPoll != nil {
		s.lastPoll = *lastPoll
	}
	s.mu.Unlock()

	if !wasActive {
		return nil
	}
	s.logger.Info("Resuming monitoring from persisted state")
	return s.Start(ctx)
}

// onTimer is the sole driver of work. It no-ops when stopped or when its
// generation is stale; otherwise it runs exactly one cycle and re-arms the
// next timer via defer, so neither an error nor a panic in the cycle breaks
// the loop.
func (s *Scheduler) onTimer(gen uint64) {
	s.mu.Lock()
	if !s.active || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	defer s.reschedule(gen)

	s.runMu.Lock()
	defer s.runMu.Unlock()
	s.runCycle()
}

func (s *Scheduler) runCycle() {
	defer func() {
		if r := recover(); r != nil {
			metrics.CycleErrors.Inc()
			s.logger.Error("Poll cycle panicked", "panic", r)
		}
	}()

	result, err := s.cycle(s.baseCtx)
	metrics.CyclesTotal.Inc()
	if err != nil {
		metrics.CycleErrors.Inc()
		s.logger.Error("Poll cycle failed", "error", err)
	} else {
		s.logger.Info("Poll cycle complete", "summary", result.Summary())
	}

	s.mu.Lock()
	s.pollCount++
	s.lastPoll = time.Now()
	s.mu.Unlock()

	if err := s.state.RecordPoll(s.baseCtx); err != nil {
		s.logger.Warn("Failed to persist poll bookkeeping", "error", err)
	}
}

// reschedule arms the next timer while the scheduler remains active and the
// caller's generation is still current. A Stop that landed during the cycle
// wins: nothing is re-armed. A Stop/Start pair hands the loop to the new
// generation's timer, so a cycle that straddles the restart cannot leave a
// second chain running.
func (s *Scheduler) reschedule(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active || gen != s.gen {
		return
	}
	s.timer = time.AfterFunc(s.interval, func() { s.onTimer(gen) })
}
