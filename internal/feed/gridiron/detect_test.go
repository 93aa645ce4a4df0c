package gridiron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahump20/blaze-live/internal/model"
)

func TestScorePlay(t *testing.T) {
	tests := []struct {
		name string
		p    Play
		want int
	}{
		{"three-yard run scores nothing", Play{Yards: 3, Period: 2, ClockSecs: 500}, 0},
		{"chunk play", Play{Yards: 15, Period: 1, ClockSecs: 600}, 20},
		{"explosive play", Play{Yards: 25, Period: 1, ClockSecs: 600}, 30},
		{"chunk of forty", Play{Yards: 40, Period: 1, ClockSecs: 600}, 40},
		{"any touchdown", Play{ScoringPlay: true, Yards: 2, Period: 3, ClockSecs: 400}, 50},
		{"long touchdown stacks", Play{ScoringPlay: true, Yards: 45, Period: 3, ClockSecs: 400}, 90},
		{"interception", Play{Text: "Pass intercepted by J. Smith", Period: 2, ClockSecs: 300}, 45},
		{"fumble recovery", Play{Text: "FUMBLES, recovered by DAL", Period: 2, ClockSecs: 300}, 45},
		{"fourth down conversion", Play{Down: 4, Distance: 2, Yards: 3, Converted: true, Period: 2, ClockSecs: 300}, 35},
		{"red zone snap", Play{YardsToEndzone: 18, Yards: 5, Period: 1, ClockSecs: 600}, 15},
		{"own-territory snap is not the red zone", Play{YardsToEndzone: 80, Yards: 5, Period: 1, ClockSecs: 600}, 0},
		{"two-minute drill", Play{Yards: 16, Period: 4, ClockSecs: 90}, 45},
		{"overtime bonus", Play{Yards: 16, Period: 5, ClockSecs: 600}, 50},
		{"everything at once clamps to 100", Play{
			Text: "intercepted, returned for a touchdown", ScoringPlay: true,
			Yards: 60, Period: 4, ClockSecs: 60, YardsToEndzone: 10,
		}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScorePlay(tt.p))
		})
	}
}

func TestIsTurnover(t *testing.T) {
	assert.True(t, isTurnover("pass INTERCEPTED at the 40"))
	assert.True(t, isTurnover("punt is muffed"))
	assert.False(t, isTurnover("deep pass complete to the 40"))
	assert.False(t, isTurnover(""))
}

func TestLeverageIndex(t *testing.T) {
	garbage := model.GameState{Period: 4, HomeScore: 38, AwayScore: 10}
	crunch := model.GameState{Period: 4, HomeScore: 21, AwayScore: 20}

	low := LeverageIndex(garbage, 1, 10)
	high := LeverageIndex(crunch, 4, 1)

	assert.Less(t, low, 1.0)
	assert.Greater(t, high, low)
	assert.LessOrEqual(t, high, LeverageCap)

	// Fourth and short beats fourth and long in the same game state.
	assert.Greater(t, LeverageIndex(crunch, 4, 1), LeverageIndex(crunch, 4, 8))

	// Overtime holds the late-game factor.
	ot := crunch
	ot.Period = 5
	assert.Equal(t, LeverageIndex(crunch, 2, 10), LeverageIndex(ot, 2, 10))

	// Down 0 (kickoffs, extra points) does not zero the index.
	assert.Greater(t, LeverageIndex(crunch, 0, 0), 0.0)
}

func TestEvaluate(t *testing.T) {
	h := NewHandler(nil, nil)
	game := &model.MonitoredGame{Sport: model.SportGridiron, Active: true}
	state := model.GameState{Status: model.StatusInProgress, Period: 4, HomeScore: 17, AwayScore: 14}

	_, ok := h.Evaluate(game, state, Play{ID: "p1", Yards: 4, Period: 4, ClockSecs: 800})
	assert.False(t, ok)

	ev, ok := h.Evaluate(game, state, Play{
		ID: "p2", Text: "deep pass intercepted by K. Jackson",
		Period: 4, ClockSecs: 420, Down: 2, Distance: 9,
	})
	require.True(t, ok)
	assert.Equal(t, "turnover", ev.EventType)
	assert.Equal(t, 45, ev.Significance)
	assert.Equal(t, "Q4 7:00", ev.GameClock)
	assert.Greater(t, ev.Leverage, 0.0)
	assert.Greater(t, ev.WinProbDelta, 0.0)

	ev, ok = h.Evaluate(game, state, Play{
		ID: "p3", ScoringPlay: true, Yards: 50, Period: 4, ClockSecs: 418,
	})
	require.True(t, ok)
	assert.Equal(t, "scoring_play", ev.EventType)
}

func TestParseClock(t *testing.T) {
	assert.Equal(t, 754, parseClock("12:34"))
	assert.Equal(t, 59, parseClock("0:59"))
	assert.Equal(t, 0, parseClock("garbage"))
}

func TestFlattenPlayConversion(t *testing.T) {
	fp := feedPlay{ID: "401-55", Text: "run up the middle", StatYardage: 4}
	fp.Start.Down = 4
	fp.Start.Distance = 3
	fp.Start.YardsToEndzone = 42
	fp.Clock.DisplayValue = "7:31"
	fp.Period.Number = 2

	p := flattenPlay(fp)
	assert.Equal(t, "401-55", p.PlayID())
	assert.True(t, p.Converted) // gained 4 needing 3
	assert.Equal(t, 451, p.ClockSecs)

	fp.StatYardage = 2
	assert.False(t, flattenPlay(fp).Converted)
}
