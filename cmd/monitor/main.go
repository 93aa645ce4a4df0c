// Command monitor is the blaze-live game monitor: it polls live feeds for
// the registered games, persists significant plays, and serves the
// start/stop/status control surface.
//
// Usage:
//
//	blaze-monitor
//	API_PORT=8200 blaze-monitor

// @title Blaze Live Monitor API
// @version 1.0.0
// @description Live-game event detection service: monitor control surface plus read-only game and event listings.
// @host localhost:8100
// @BasePath /
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ahump20/blaze-live/internal/api"
	"github.com/ahump20/blaze-live/internal/api/handler"
	"github.com/ahump20/blaze-live/internal/cache"
	"github.com/ahump20/blaze-live/internal/config"
	"github.com/ahump20/blaze-live/internal/db"
	"github.com/ahump20/blaze-live/internal/feed"
	"github.com/ahump20/blaze-live/internal/feed/baseball"
	"github.com/ahump20/blaze-live/internal/feed/basketball"
	"github.com/ahump20/blaze-live/internal/feed/gridiron"
	"github.com/ahump20/blaze-live/internal/poll"
	"github.com/ahump20/blaze-live/internal/scheduler"
	"github.com/ahump20/blaze-live/internal/store"

	_ "github.com/ahump20/blaze-live/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Connect to Redis (processed-play cache)
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("Invalid REDIS_URL", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	processed := cache.NewProcessed(redisClient, cfg.ProcessedTTL)
	if err := processed.Ping(ctx); err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	logger.Info("Redis connected", "processed_ttl", cfg.ProcessedTTL)

	// Stores
	games := store.NewGames(pool.Pool)
	events := store.NewEvents(pool.Pool)
	monitor := store.NewMonitor(pool.Pool)

	// Per-sport feed handlers
	registry := feed.NewRegistry(
		baseball.NewHandler(feed.NewClient(cfg.BaseballFeedURL, cfg.FeedRequestsPerMinute, cfg.FetchTimeout, logger), logger),
		gridiron.NewHandler(feed.NewClient(cfg.GridironFeedURL, cfg.FeedRequestsPerMinute, cfg.FetchTimeout, logger), logger),
		basketball.NewHandler(feed.NewClient(cfg.BasketballFeedURL, cfg.FeedRequestsPerMinute, cfg.FetchTimeout, logger), logger),
	)

	// Detection engine + scheduler
	engine := poll.NewEngine(games, events, processed, registry, logger)
	sched := scheduler.New(ctx, engine.RunCycle, monitor, cfg.PollInterval, logger)

	// Resume monitoring if the previous process was active
	state, err := monitor.State(ctx)
	if err != nil {
		logger.Warn("Could not read persisted monitor state", "error", err)
	} else if err := sched.Resume(ctx, state.Active, state.PollCount, state.LastPoll); err != nil {
		logger.Error("Failed to resume scheduler", "error", err)
	}

	// Router + HTTP server
	h := handler.New(sched, games, events, pool, processed)
	router := api.NewRouter(h, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting blaze-live monitor",
			"addr", addr,
			"environment", cfg.Environment,
			"poll_interval", cfg.PollInterval)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt. The persisted active flag is left untouched so a
	// restarted process resumes monitoring.
	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
