package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahump20/blaze-live/internal/model"
)

// Events provides access to the append-only live_events table.
type Events struct {
	pool *pgxpool.Pool
}

// NewEvents creates an event store accessor.
func NewEvents(pool *pgxpool.Pool) *Events {
	return &Events{pool: pool}
}

// Insert persists one detected event. Events are immutable after insert;
// only the published/reconstructed flags may change later.
func (e *Events) Insert(ctx context.Context, ev *model.LiveEvent) error {
	raw, err := json.Marshal(ev.RawPayload)
	if err != nil {
		return fmt.Errorf("marshal raw payload: %w", err)
	}
	var launch []byte
	if ev.Launch != nil {
		if launch, err = json.Marshal(ev.Launch); err != nil {
			return fmt.Errorf("marshal launch params: %w", err)
		}
	}
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	_, err = e.pool.Exec(ctx, "insert_event",
		ev.ID, ev.GameID, ev.Sport, ev.EventType, ev.DetectedAt, ev.GameClock,
		ev.Leverage, ev.WinProbDelta, ev.Significance, raw, launch)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Get loads one event by id. Returns ErrNotFound for unknown ids.
func (e *Events) Get(ctx context.Context, id uuid.UUID) (*model.LiveEvent, error) {
	row := e.pool.QueryRow(ctx, "event_by_id", id)
	ev, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return ev, err
}

// List returns the most recently detected events.
func (e *Events) List(ctx context.Context, limit int) ([]*model.LiveEvent, error) {
	rows, err := e.pool.Query(ctx, "list_events", limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []*model.LiveEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// MarkReconstructed flips the reconstruction flag after a successful
// physics run.
func (e *Events) MarkReconstructed(ctx context.Context, id uuid.UUID) error {
	if _, err := e.pool.Exec(ctx, "mark_event_reconstructed", id); err != nil {
		return fmt.Errorf("mark reconstructed: %w", err)
	}
	return nil
}

func scanEvent(row pgx.Row) (*model.LiveEvent, error) {
	var ev model.LiveEvent
	var raw, launch []byte
	if err := row.Scan(
		&ev.ID, &ev.GameID, &ev.Sport, &ev.EventType, &ev.DetectedAt, &ev.GameClock,
		&ev.Leverage, &ev.WinProbDelta, &ev.Significance,
		&raw, &launch, &ev.Published, &ev.Reconstructed,
	); err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &ev.RawPayload); err != nil {
			return nil, fmt.Errorf("unmarshal raw payload: %w", err)
		}
	}
	if len(launch) > 0 {
		ev.Launch = &model.LaunchParameters{}
		if err := json.Unmarshal(launch, ev.Launch); err != nil {
			return nil, fmt.Errorf("unmarshal launch params: %w", err)
		}
	}
	return &ev, nil
}
