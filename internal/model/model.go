// Package model defines the core records shared by the monitor, the
// detection engine, and the physics engine.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Sport identifies which feed handler owns a monitored game.
type Sport string

const (
	SportBaseball   Sport = "MLB"
	SportGridiron   Sport = "NFL"
	SportBasketball Sport = "NBA"
)

// GameStatus is the lifecycle state reported by an upstream feed.
type GameStatus string

const (
	StatusScheduled  GameStatus = "scheduled"
	StatusInProgress GameStatus = "in_progress"
	StatusFinal      GameStatus = "final"
	StatusPostponed  GameStatus = "postponed"
	StatusSuspended  GameStatus = "suspended"
)

// Terminal reports whether a status ends monitoring for the game.
func (s GameStatus) Terminal() bool {
	switch s {
	case StatusFinal, StatusPostponed, StatusSuspended:
		return true
	}
	return false
}

// GameState is the cached snapshot of a live game. It is replaced wholesale
// on every poll, never partially merged.
type GameState struct {
	Status    GameStatus `json:"status"`
	Period    int        `json:"period"` // inning for baseball, quarter otherwise
	Clock     string     `json:"clock,omitempty"`
	HomeScore int        `json:"home_score"`
	AwayScore int        `json:"away_score"`

	// Baseball only.
	InningHalf string  `json:"inning_half,omitempty"` // "top" or "bottom"
	Outs       int     `json:"outs,omitempty"`
	Runners    [3]bool `json:"runners,omitempty"` // first, second, third
}

// MonitoredGame is one row of the game registry.
type MonitoredGame struct {
	ID           uuid.UUID  `json:"id"`
	Sport        Sport      `json:"sport"`
	ExternalID   string     `json:"external_id"`
	HomeTeam     string     `json:"home_team"`
	AwayTeam     string     `json:"away_team"`
	Active       bool       `json:"active"`
	State        GameState  `json:"state"`
	PollInterval int        `json:"poll_interval_seconds"`
	LastPolled   *time.Time `json:"last_polled,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LiveEvent is an immutable record of one detected play. Rows are inserted
// once at detection time and never mutated.
type LiveEvent struct {
	ID            uuid.UUID         `json:"id"`
	GameID        uuid.UUID         `json:"game_id"`
	Sport         Sport             `json:"sport"`
	EventType     string            `json:"event_type"`
	DetectedAt    time.Time         `json:"detected_at"`
	GameClock     string            `json:"game_clock,omitempty"`
	Leverage      float64           `json:"leverage_index"`
	WinProbDelta  float64           `json:"win_prob_delta"`
	Significance  int               `json:"significance_score"`
	RawPayload    map[string]any    `json:"raw_payload"`
	Launch        *LaunchParameters `json:"launch_parameters,omitempty"`
	Published     bool              `json:"published"`
	Reconstructed bool              `json:"reconstructed"`
}

// LaunchParameters carries Statcast-style tracking data. An event embeds
// only the subset its detection path observed; absent fields stay zero.
type LaunchParameters struct {
	// Batted ball.
	ExitVelocity float64 `json:"exit_velocity_mph,omitempty"`
	LaunchAngle  float64 `json:"launch_angle_deg,omitempty"`
	Distance     float64 `json:"distance_ft,omitempty"`
	SprayAngle   float64 `json:"spray_angle_deg,omitempty"`

	// Pitch.
	ReleaseVelocity float64    `json:"release_velocity_mph,omitempty"`
	ReleasePoint    [3]float64 `json:"release_point_ft,omitempty"`
	SpinRate        float64    `json:"spin_rate_rpm,omitempty"`
	SpinAxis        float64    `json:"spin_axis_deg,omitempty"`

	// Environment.
	WindSpeed     float64 `json:"wind_speed_mph,omitempty"`
	WindDirection float64 `json:"wind_direction_deg,omitempty"`
	Temperature   float64 `json:"temperature_f,omitempty"`
}
