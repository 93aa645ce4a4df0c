package gridiron

import (
	"github.com/ahump20/blaze-live/internal/feed"
	"github.com/ahump20/blaze-live/internal/model"
)

// Context-metric caps for football. Possessions are scarce, so leverage caps
// at 4 like baseball.
const (
	LeverageCap = 4.0
	WinProbCap  = 0.5
)

// LeverageIndex composes period progress, down-and-distance criticality, and
// score closeness, clamped to [0, LeverageCap]. Down and distance come from
// the play being scored; the rest from the cached game state.
func LeverageIndex(state model.GameState, down, distance int) float64 {
	progress := float64(state.Period) / regulationPeriods
	if progress > 1 {
		progress = 1 // overtime holds the late-game factor
	}
	periodFactor := 0.5 + progress

	// Late downs with short distance are do-or-die; 4th and inches peaks.
	downFactor := 1.0
	if down > 0 {
		downFactor = 1 + 0.2*float64(down-1)
		if down >= 3 && distance > 0 && distance <= 3 {
			downFactor += 0.2
		}
	}

	diff := state.HomeScore - state.AwayScore
	if diff < 0 {
		diff = -diff
	}
	closeness := 1.5 / (1 + 0.25*float64(diff))

	return feed.Clamp(periodFactor*downFactor*closeness, LeverageCap)
}
