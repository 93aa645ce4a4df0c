package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahump20/blaze-live/internal/poll"
)

type fakeState struct {
	mu      sync.Mutex
	active  []bool
	records int
}

func (f *fakeState) SetActive(_ context.Context, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = append(f.active, active)
	return nil
}

func (f *fakeState) RecordPoll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records++
	return nil
}

func (f *fakeState) lastActive() (bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.active) == 0 {
		return false, false
	}
	return f.active[len(f.active)-1], true
}

func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestStartRunsAndReschedules(t *testing.T) {
	var cycles atomic.Int64
	cycle := func(context.Context) (poll.CycleResult, error) {
		cycles.Add(1)
		return poll.CycleResult{}, nil
	}

	state := &fakeState{}
	s := New(context.Background(), cycle, state, 50*time.Millisecond, nil)
	require.NoError(t, s.Start(context.Background()))

	active, ok := state.lastActive()
	require.True(t, ok)
	assert.True(t, active)
	assert.True(t, s.Status().Active)

	// The first poll fires after the startup delay, then keeps recurring.
	waitFor(t, 3*time.Second, func() bool { return cycles.Load() >= 3 })

	require.NoError(t, s.Stop(context.Background()))
	assert.False(t, s.Status().Active)
	active, _ = state.lastActive()
	assert.False(t, active)

	// No new cycles once stopped.
	settled := cycles.Load()
	time.Sleep(150 * time.Millisecond)
	assert.LessOrEqual(t, cycles.Load(), settled+1) // at most one in-flight finisher
}

func TestFailingCycleKeepsRescheduling(t *testing.T) {
	var cycles atomic.Int64
	cycle := func(context.Context) (poll.CycleResult, error) {
		cycles.Add(1)
		return poll.CycleResult{}, errors.New("feed down")
	}

	s := New(context.Background(), cycle, &fakeState{}, 50*time.Millisecond, nil)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	waitFor(t, 3*time.Second, func() bool { return cycles.Load() >= 3 })
	assert.True(t, s.Status().Active)
}

func TestPanickingCycleKeepsRescheduling(t *testing.T) {
	var cycles atomic.Int64
	cycle := func(context.Context) (poll.CycleResult, error) {
		cycles.Add(1)
		panic("detector bug")
	}

	s := New(context.Background(), cycle, &fakeState{}, 50*time.Millisecond, nil)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	waitFor(t, 3*time.Second, func() bool { return cycles.Load() >= 3 })
	assert.True(t, s.Status().Active)
}

func TestStartIsIdempotent(t *testing.T) {
	state := &fakeState{}
	s := New(context.Background(), func(context.Context) (poll.CycleResult, error) {
		return poll.CycleResult{}, nil
	}, state, time.Minute, nil)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))

	state.mu.Lock()
	writes := len(state.active)
	state.mu.Unlock()
	assert.Equal(t, 1, writes, "second Start should not re-persist")

	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}

func TestResume(t *testing.T) {
	state := &fakeState{}
	s := New(context.Background(), func(context.Context) (poll.CycleResult, error) {
		return poll.CycleResult{}, nil
	}, state, time.Minute, nil)

	last := time.Now().Add(-time.Hour)
	require.NoError(t, s.Resume(context.Background(), false, 42, &last))
	st := s.Status()
	assert.False(t, st.Active)
	assert.Equal(t, int64(42), st.PollCount)
	require.NotNil(t, st.LastPoll)
	assert.Equal(t, last, *st.LastPoll)

	// An active persisted flag restarts monitoring.
	require.NoError(t, s.Resume(context.Background(), true, 42, &last))
	assert.True(t, s.Status().Active)
	require.NoError(t, s.Stop(context.Background()))
}

func TestRestartDuringCycleLeavesOneTimerChain(t *testing.T) {
	var cycles atomic.Int64
	block := make(chan struct{})
	cycle := func(context.Context) (poll.CycleResult, error) {
		if cycles.Add(1) == 1 {
			<-block
		}
		return poll.CycleResult{}, nil
	}

	s := New(context.Background(), cycle, &fakeState{}, 100*time.Millisecond, nil)
	require.NoError(t, s.Start(context.Background()))
	waitFor(t, 3*time.Second, func() bool { return cycles.Load() == 1 })

	// Restart while the first cycle is still in flight. The old cycle's
	// re-arm must not survive alongside the new chain.
	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	close(block)

	// One chain: first poll a second out, then one cycle per interval. A
	// leaked second chain would roughly double the rate.
	time.Sleep(2 * time.Second)
	require.NoError(t, s.Stop(context.Background()))
	got := cycles.Load()
	assert.GreaterOrEqual(t, got, int64(5))
	assert.LessOrEqual(t, got, int64(15))
}

func TestCyclesNeverOverlap(t *testing.T) {
	var inFlight, maxInFlight atomic.Int64
	cycle := func(context.Context) (poll.CycleResult, error) {
		cur := inFlight.Add(1)
		if cur > maxInFlight.Load() {
			maxInFlight.Store(cur)
		}
		time.Sleep(120 * time.Millisecond) // longer than the interval
		inFlight.Add(-1)
		return poll.CycleResult{}, nil
	}

	s := New(context.Background(), cycle, &fakeState{}, 20*time.Millisecond, nil)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	time.Sleep(1600 * time.Millisecond)
	assert.Equal(t, int64(1), maxInFlight.Load())
}
