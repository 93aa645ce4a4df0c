// Package store persists the game registry, detected events, and monitor
// state in Postgres.
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

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Games provides access to the monitored_games registry.
type Games struct {
	pool *pgxpool.Pool
}

// NewGames creates a game registry accessor.
func NewGames(pool *pgxpool.Pool) *Games {
	return &Games{pool: pool}
}

// Register inserts a new monitored game with active=true.
func (g *Games) Register(ctx context.Context, game *model.MonitoredGame) error {
	state, err := json.Marshal(game.State)
	if err != nil {
		return fmt.Errorf("marshal game state: %w", err)
	}
	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}
	_, err = g.pool.Exec(ctx, "insert_game",
		game.ID, game.Sport, game.ExternalID, game.HomeTeam, game.AwayTeam,
		state, game.PollInterval)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

// ActiveIDs returns the ids of all games currently being monitored.
func (g *Games) ActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := g.pool.Query(ctx, "active_game_ids")
	if err != nil {
		return nil, fmt.Errorf("query active games: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Get loads one monitored game. Returns ErrNotFound for unknown ids.
func (g *Games) Get(ctx context.Context, id uuid.UUID) (*model.MonitoredGame, error) {
	row := g.pool.QueryRow(ctx, "game_by_id", id)
	game, err := scanGame(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return game, err
}

// List returns the most recently registered games.
func (g *Games) List(ctx context.Context, limit int) ([]*model.MonitoredGame, error) {
	rows, err := g.pool.Query(ctx, "list_games", limit)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []*model.MonitoredGame
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// UpdateState replaces the cached game state and stamps last_polled.
func (g *Games) UpdateState(ctx context.Context, id uuid.UUID, state model.GameState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal game state: %w", err)
	}
	if _, err := g.pool.Exec(ctx, "update_game_state", id, payload); err != nil {
		return fmt.Errorf("update game state: %w", err)
	}
	return nil
}

// Deactivate clears the active flag, ending monitoring for the game.
func (g *Games) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := g.pool.Exec(ctx, "deactivate_game", id); err != nil {
		return fmt.Errorf("deactivate game: %w", err)
	}
	return nil
}

func scanGame(row pgx.Row) (*model.MonitoredGame, error) {
	var game model.MonitoredGame
	var state []byte
	if err := row.Scan(
		&game.ID, &game.Sport, &game.ExternalID, &game.HomeTeam, &game.AwayTeam,
		&game.Active, &state, &game.PollInterval, &game.LastPolled,
		&game.CreatedAt, &game.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(state) > 0 {
		if err := json.Unmarshal(state, &game.State); err != nil {
			return nil, fmt.Errorf("unmarshal game state: %w", err)
		}
	}
	return &game, nil
}
