// Package metrics exposes Prometheus instrumentation for the monitor.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CyclesTotal counts completed poll cycles, including failed ones.
	CyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blaze_live_poll_cycles_total",
		Help: "Total poll cycles run by the scheduler.",
	})

	// CycleErrors counts cycles that ended in a recovered error or panic.
	CycleErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blaze_live_poll_cycle_errors_total",
		Help: "Poll cycles that ended in a recovered error.",
	})

	// FetchErrors counts per-game upstream fetch failures by sport.
	FetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blaze_live_feed_fetch_errors_total",
		Help: "Upstream feed fetch failures.",
	}, []string{"sport"})

	// GamesPolled counts successfully polled games by sport.
	GamesPolled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blaze_live_games_polled_total",
		Help: "Games successfully polled.",
	}, []string{"sport"})

	// EventsDetected counts qualifying events persisted by sport.
	EventsDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blaze_live_events_detected_total",
		Help: "Qualifying live events persisted.",
	}, []string{"sport"})

	// SchedulerActive is 1 while the scheduler is running.
	SchedulerActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "blaze_live_scheduler_active",
		Help: "Whether the scheduler is currently active.",
	})
)
