// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahump20/blaze-live/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the monitor and CLI
// use. Prepared statements eliminate parse overhead on the hot poll path.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Game registry
		"active_game_ids": "SELECT id FROM monitored_games WHERE active = true ORDER BY created_at",
		"game_by_id": `SELECT id, sport, external_id, home_team, away_team, active,
			game_state, poll_interval_seconds, last_polled, created_at, updated_at
			FROM monitored_games WHERE id = $1`,
		"list_games": `SELECT id, sport, external_id, home_team, away_team, active,
			game_state, poll_interval_seconds, last_polled, created_at, updated_at
			FROM monitored_games ORDER BY created_at DESC LIMIT $1`,
		"insert_game": `INSERT INTO monitored_games
			(id, sport, external_id, home_team, away_team, active, game_state, poll_interval_seconds)
			VALUES ($1, $2, $3, $4, $5, true, $6, $7)`,
		"update_game_state": `UPDATE monitored_games
			SET game_state = $2, last_polled = NOW(), updated_at = NOW() WHERE id = $1`,
		"deactivate_game": `UPDATE monitored_games
			SET active = false, updated_at = NOW() WHERE id = $1`,

		// Events
		"insert_event": `INSERT INTO live_events
			(id, game_id, sport, event_type, detected_at, game_clock,
			 leverage_index, win_prob_delta, significance_score,
			 raw_payload, launch_params, published, reconstructed)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, false, false)`,
		"list_events": `SELECT id, game_id, sport, event_type, detected_at, game_clock,
			leverage_index, win_prob_delta, significance_score,
			raw_payload, launch_params, published, reconstructed
			FROM live_events ORDER BY detected_at DESC LIMIT $1`,
		"event_by_id": `SELECT id, game_id, sport, event_type, detected_at, game_clock,
			leverage_index, win_prob_delta, significance_score,
			raw_payload, launch_params, published, reconstructed
			FROM live_events WHERE id = $1`,
		"mark_event_reconstructed": "UPDATE live_events SET reconstructed = true WHERE id = $1",

		// Scheduler state
		"get_monitor_state": "SELECT active, last_poll, poll_count FROM monitor_state WHERE id = 1",
		"set_monitor_active": `INSERT INTO monitor_state (id, active) VALUES (1, $1)
			ON CONFLICT (id) DO UPDATE SET active = EXCLUDED.active, updated_at = NOW()`,
		"record_poll": `UPDATE monitor_state
			SET last_poll = NOW(), poll_count = poll_count + 1, updated_at = NOW() WHERE id = 1`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
