// Package handler implements the monitor's HTTP control surface.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ahump20/blaze-live/internal/api/respond"
	"github.com/ahump20/blaze-live/internal/cache"
	"github.com/ahump20/blaze-live/internal/db"
	"github.com/ahump20/blaze-live/internal/scheduler"
	"github.com/ahump20/blaze-live/internal/store"
)

// Handler holds the dependencies shared by all endpoints.
type Handler struct {
	sched     *scheduler.Scheduler
	games     *store.Games
	events    *store.Events
	pool      *db.Pool
	processed *cache.Processed
}

// New creates the handler set.
func New(sched *scheduler.Scheduler, games *store.Games, events *store.Events, pool *db.Pool, processed *cache.Processed) *Handler {
	return &Handler{
		sched:     sched,
		games:     games,
		events:    events,
		pool:      pool,
		processed: processed,
	}
}

// Start begins monitoring.
//
// @Summary Start the live-game monitor
// @Tags monitor
// @Produce json
// @Success 200 {object} map[string]any
// @Router /start [post]
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	if err := h.sched.Start(r.Context()); err != nil {
		respond.Error(w, http.StatusInternalServerError, "START_FAILED", err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"active":        true,
		"poll_interval": h.sched.Interval().String(),
		"next_poll_eta": time.Now().Add(time.Second).UTC(),
	})
}

// Stop halts monitoring and cancels the pending timer.
//
// @Summary Stop the live-game monitor
// @Tags monitor
// @Produce json
// @Success 200 {object} map[string]any
// @Router /stop [post]
func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	if err := h.sched.Stop(r.Context()); err != nil {
		respond.Error(w, http.StatusInternalServerError, "STOP_FAILED", err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"active": false})
}

// Status reports the scheduler snapshot. Safe to call mid-cycle.
//
// @Summary Monitor status
// @Tags monitor
// @Produce json
// @Success 200 {object} scheduler.Status
// @Router /status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.sched.Status())
}

// ListGames returns recently registered games.
//
// @Summary List monitored games
// @Tags games
// @Produce json
// @Param limit query int false "max rows" default(50)
// @Success 200 {array} model.MonitoredGame
// @Router /api/v1/games [get]
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.List(r.Context(), queryLimit(r, 50))
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, games)
}

// ListEvents returns recently detected events.
//
// @Summary List detected live events
// @Tags events
// @Produce json
// @Param limit query int false "max rows" default(50)
// @Success 200 {array} model.LiveEvent
// @Router /api/v1/events [get]
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context(), queryLimit(r, 50))
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, events)
}

// Health checks liveness plus database and Redis reachability.
//
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok", "database": "ok", "redis": "ok"}
	code := http.StatusOK
	if err := h.pool.HealthCheck(ctx); err != nil {
		status["status"], status["database"] = "degraded", err.Error()
		code = http.StatusServiceUnavailable
	}
	if err := h.processed.Ping(ctx); err != nil {
		status["status"], status["redis"] = "degraded", err.Error()
		code = http.StatusServiceUnavailable
	}
	respond.JSON(w, code, status)
}

func queryLimit(r *http.Request, fallback int) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			return n
		}
	}
	return fallback
}
