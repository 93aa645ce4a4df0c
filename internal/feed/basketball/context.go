package basketball

import (
	"github.com/ahump20/blaze-live/internal/feed"
	"github.com/ahump20/blaze-live/internal/model"
)

// Context-metric caps for basketball. Possessions are dense, so no single
// one is worth as much as a baseball plate appearance — but the cap sits at
// 5 because the last possessions of a one-point game dwarf everything else.
const (
	LeverageCap = 5.0
	WinProbCap  = 0.5
)

// LeverageIndex composes period progress, clock pressure, and score
// closeness, clamped to [0, LeverageCap]. clockSecs is the time remaining in
// the period for the action being scored.
func LeverageIndex(state model.GameState, clockSecs float64) float64 {
	progress := float64(state.Period) / regulationPeriods
	if progress > 1 {
		progress = 1 // overtime holds the late-game factor
	}
	periodFactor := 0.5 + progress

	// Clock pressure ramps over the last five minutes of a period.
	clockFactor := 1.0
	if clockSecs >= 0 && clockSecs <= 300 {
		clockFactor = 1 + (300-clockSecs)/300
	}

	diff := state.HomeScore - state.AwayScore
	if diff < 0 {
		diff = -diff
	}
	closeness := 1.7 / (1 + 0.15*float64(diff))

	return feed.Clamp(periodFactor*clockFactor*closeness, LeverageCap)
}
