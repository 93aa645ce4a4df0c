// Package poll runs one detection cycle: load the actively monitored games,
// fetch each game's live feed, refresh its cached state, and score newly
// observed plays.
package poll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ahump20/blaze-live/internal/feed"
	"github.com/ahump20/blaze-live/internal/metrics"
	"github.com/ahump20/blaze-live/internal/model"
	"github.com/ahump20/blaze-live/internal/store"
)

// GameStore is the registry surface the engine needs.
type GameStore interface {
	ActiveIDs(ctx context.Context) ([]uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*model.MonitoredGame, error)
	UpdateState(ctx context.Context, id uuid.UUID, state model.GameState) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// EventStore persists qualifying events.
type EventStore interface {
	Insert(ctx context.Context, ev *model.LiveEvent) error
}

// ProcessedCache is the durable per-game seen-ID set.
type ProcessedCache interface {
	Load(ctx context.Context, gameID uuid.UUID) (map[string]bool, error)
	Save(ctx context.Context, gameID uuid.UUID, playIDs []string) error
}

// CycleResult summarizes one cycle for logging and the /status surface.
type CycleResult struct {
	GamesPolled    int
	GamesFailed    int
	EventsDetected int
	Errors         []string
	Duration       time.Duration
}

// Summary renders a one-line digest of the cycle.
func (r CycleResult) Summary() string {
	return fmt.Sprintf("polled=%d failed=%d events=%d duration=%s",
		r.GamesPolled, r.GamesFailed, r.EventsDetected, r.Duration.Round(time.Millisecond))
}

// Engine drives detection for all monitored games.
type Engine struct {
	games     GameStore
	events    EventStore
	processed ProcessedCache
	registry  *feed.Registry
	logger    *slog.Logger
}

// NewEngine creates a detection engine.
func NewEngine(games GameStore, events EventStore, processed ProcessedCache, registry *feed.Registry, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		games:     games,
		events:    events,
		processed: processed,
		registry:  registry,
		logger:    logger,
	}
}

// RunCycle processes every active game sequentially. A failure on one
// game's fetch/detect path is recorded and the loop continues; only a
// failure to list the active games aborts the cycle.
func (e *Engine) RunCycle(ctx context.Context) (CycleResult, error) {
	start := time.Now()
	var result CycleResult

	ids, err := e.games.ActiveIDs(ctx)
	if err != nil {
		result.Duration = time.Since(start)
		return result, fmt.Errorf("list active games: %w", err)
	}

	for _, id := range ids {
		detected, err := e.PollGame(ctx, id)
		if err != nil {
			result.GamesFailed++
			result.Errors = append(result.Errors, fmt.Sprintf("game %s: %s", id, err))
			e.logger.Warn("Poll failed", "game_id", id, "error", err)
			continue
		}
		result.GamesPolled++
		result.EventsDetected += detected
	}

	result.Duration = time.Since(start)
	return result, nil
}

// PollGame runs the per-game skeleton: fetch, terminal check, state refresh,
// load the seen set, detect over the play list, persist events, save the
// set. Returns the number of events persisted.
//
// A missing or inactive game returns silently — the game may have been
// deactivated between the cycle's listing and this call.
func (e *Engine) PollGame(ctx context.Context, id uuid.UUID) (int, error) {
	game, err := e.games.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load game: %w", err)
	}
	if !game.Active {
		return 0, nil
	}

	handler, err := e.registry.Lookup(game.Sport)
	if err != nil {
		return 0, err
	}

	snap, err := handler.Fetch(ctx, game.ExternalID)
	if err != nil {
		metrics.FetchErrors.WithLabelValues(string(game.Sport)).Inc()
		return 0, fmt.Errorf("fetch feed: %w", err)
	}

	if snap.Terminal() {
		e.logger.Info("Game reached terminal status; deactivating",
			"game_id", game.ID, "status", snap.State.Status)
		if err := e.games.Deactivate(ctx, game.ID); err != nil {
			return 0, fmt.Errorf("deactivate game: %w", err)
		}
		return 0, nil
	}

	if err := e.games.UpdateState(ctx, game.ID, snap.State); err != nil {
		return 0, fmt.Errorf("update game state: %w", err)
	}

	seen, err := e.processed.Load(ctx, game.ID)
	if err != nil {
		return 0, fmt.Errorf("load processed set: %w", err)
	}

	// Every visited play id is recorded regardless of the qualify/reject
	// decision — at-most-once scoring even under feed re-delivery. A play
	// whose event fails to persist is retried next cycle instead.
	var visited []string
	detected := 0
	for _, play := range snap.Plays {
		playID := play.PlayID()
		if seen[playID] {
			continue
		}
		seen[playID] = true

		ev, ok := handler.Evaluate(game, snap.State, play)
		if ok {
			if err := e.events.Insert(ctx, ev); err != nil {
				e.logger.Warn("Event insert failed; play will be rescored next cycle",
					"game_id", game.ID, "play_id", playID, "error", err)
				continue
			}
			detected++
			metrics.EventsDetected.WithLabelValues(string(game.Sport)).Inc()
			e.logger.Info("Live event detected",
				"game_id", game.ID,
				"sport", game.Sport,
				"type", ev.EventType,
				"score", ev.Significance,
				"leverage", ev.Leverage)
		}
		visited = append(visited, playID)
	}

	if err := e.processed.Save(ctx, game.ID, visited); err != nil {
		return detected, fmt.Errorf("save processed set: %w", err)
	}

	metrics.GamesPolled.WithLabelValues(string(game.Sport)).Inc()
	return detected, nil
}
