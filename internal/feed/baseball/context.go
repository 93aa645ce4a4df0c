package baseball

import (
	"github.com/ahump20/blaze-live/internal/feed"
	"github.com/ahump20/blaze-live/internal/model"
)

// Context-metric caps for baseball. Leverage tops out near 4 because only a
// handful of plate appearances per game carry that much weight; the win
// probability swing of a single play is capped at half the game.
const (
	LeverageCap = 4.0
	WinProbCap  = 0.5
)

// LeverageIndex composes inning progress, outs criticality, score closeness,
// and baserunner pressure into a single multiplicative index, clamped to
// [0, LeverageCap].
func LeverageIndex(state model.GameState) float64 {
	progress := float64(state.Period) / 9
	if progress > 1 {
		progress = 1 // extra innings hold the late-game factor
	}
	inningFactor := 0.5 + progress

	outsFactor := 1 + 0.15*float64(state.Outs)

	diff := state.HomeScore - state.AwayScore
	if diff < 0 {
		diff = -diff
	}
	closeness := 1.5 / (1 + 0.4*float64(diff))

	runners := 0
	for _, occupied := range state.Runners {
		if occupied {
			runners++
		}
	}
	runnerFactor := 1 + 0.25*float64(runners)

	return feed.Clamp(inningFactor*outsFactor*closeness*runnerFactor, LeverageCap)
}
