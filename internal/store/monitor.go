package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MonitorState is the single persisted row of scheduler state.
type MonitorState struct {
	Active    bool       `json:"active"`
	LastPoll  *time.Time `json:"last_poll,omitempty"`
	PollCount int64      `json:"poll_count"`
}

// Monitor persists the scheduler's active flag and poll bookkeeping so a
// restarted process resumes in the state it was left in.
type Monitor struct {
	pool *pgxpool.Pool
}

// NewMonitor creates a monitor state accessor.
func NewMonitor(pool *pgxpool.Pool) *Monitor {
	return &Monitor{pool: pool}
}

// State returns the persisted scheduler state. A missing row reads as the
// stopped state.
func (m *Monitor) State(ctx context.Context) (MonitorState, error) {
	var s MonitorState
	err := m.pool.QueryRow(ctx, "get_monitor_state").Scan(&s.Active, &s.LastPoll, &s.PollCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return MonitorState{}, nil
	}
	if err != nil {
		return MonitorState{}, fmt.Errorf("get monitor state: %w", err)
	}
	return s, nil
}

// SetActive persists the active flag, creating the state row if absent.
func (m *Monitor) SetActive(ctx context.Context, active bool) error {
	if _, err := m.pool.Exec(ctx, "set_monitor_active", active); err != nil {
		return fmt.Errorf("set monitor active: %w", err)
	}
	return nil
}

// RecordPoll stamps last_poll and increments poll_count after a cycle.
func (m *Monitor) RecordPoll(ctx context.Context) error {
	if _, err := m.pool.Exec(ctx, "record_poll"); err != nil {
		return fmt.Errorf("record poll: %w", err)
	}
	return nil
}
