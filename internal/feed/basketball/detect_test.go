package basketball

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahump20/blaze-live/internal/model"
)

func TestScoreAction(t *testing.T) {
	tests := []struct {
		name string
		a    Action
		want int
	}{
		{"made three, early", Action{Type: "3pt", ShotMade: true, Period: 1, ClockSecs: 600}, 35},
		{"missed three", Action{Type: "3pt", Period: 1, ClockSecs: 600}, 0},
		{"dunk", Action{Type: "2pt", SubType: "DUNK", ShotMade: true, Period: 2, ClockSecs: 400}, 30},
		{"alley oop", Action{Type: "2pt", SubType: "Alley Oop Layup", ShotMade: true, Period: 2, ClockSecs: 400}, 30},
		{"midrange jumper", Action{Type: "2pt", SubType: "Jump Shot", ShotMade: true, Period: 2, ClockSecs: 400}, 20},
		{"block", Action{Type: "block", Period: 1, ClockSecs: 600}, 35},
		{"steal", Action{Type: "steal", Period: 1, ClockSecs: 600}, 30},
		{"turnover", Action{Type: "turnover", Period: 1, ClockSecs: 600}, 25},
		{"offensive rebound", Action{Type: "rebound", SubType: "offensive", Period: 1, ClockSecs: 600}, 15},
		{"defensive rebound", Action{Type: "rebound", SubType: "defensive", Period: 1, ClockSecs: 600}, 5},
		{"flagrant foul", Action{Type: "foul", SubType: "flagrant-type-1", Period: 3, ClockSecs: 300}, 35},
		{"technical foul", Action{Type: "foul", SubType: "technical", Period: 3, ClockSecs: 300}, 35},
		{"common foul", Action{Type: "foul", SubType: "personal", Period: 3, ClockSecs: 300}, 0},
		{"clutch three inside two minutes", Action{Type: "3pt", ShotMade: true, Period: 4, ClockSecs: 95}, 75},
		{"late three inside five minutes", Action{Type: "3pt", ShotMade: true, Period: 4, ClockSecs: 250}, 55},
		{"clutch bonus needs the final period", Action{Type: "3pt", ShotMade: true, Period: 2, ClockSecs: 95}, 35},
		{"overtime counts as final period", Action{Type: "2pt", SubType: "Layup", ShotMade: true, Period: 5, ClockSecs: 100}, 70},
		{"buzzer beater stacks past the clamp", Action{Type: "3pt", ShotMade: true, Period: 4, ClockSecs: 1}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreAction(tt.a))
		})
	}
}

func TestLeverageIndex(t *testing.T) {
	blowout := model.GameState{Period: 3, HomeScore: 98, AwayScore: 70}
	crunch := model.GameState{Period: 4, HomeScore: 101, AwayScore: 100}

	low := LeverageIndex(blowout, 400)
	high := LeverageIndex(crunch, 20)

	assert.Less(t, low, 1.0)
	assert.Greater(t, high, low)
	assert.LessOrEqual(t, high, LeverageCap)

	// One-point game, final seconds: leverage pins the cap.
	assert.InDelta(t, LeverageCap, LeverageIndex(model.GameState{
		Period: 4, HomeScore: 100, AwayScore: 100,
	}, 5), 1e-9)

	// Clock pressure only ramps inside five minutes.
	assert.Equal(t,
		LeverageIndex(crunch, 301),
		LeverageIndex(crunch, 600))
	assert.Greater(t,
		LeverageIndex(crunch, 100),
		LeverageIndex(crunch, 299))
}

func TestEvaluate(t *testing.T) {
	h := NewHandler(nil, nil)
	game := &model.MonitoredGame{Sport: model.SportBasketball, Active: true}
	state := model.GameState{Status: model.StatusInProgress, Period: 4, HomeScore: 88, AwayScore: 87}

	_, ok := h.Evaluate(game, state, Action{ID: "action-10", Type: "2pt", SubType: "Jump Shot", ShotMade: true, Period: 2, ClockSecs: 400})
	assert.False(t, ok)

	ev, ok := h.Evaluate(game, state, Action{
		ID: "action-11", Type: "3pt", ShotMade: true, Period: 4, ClockSecs: 1.4,
	})
	require.True(t, ok)
	assert.Equal(t, "buzzer_beater", ev.EventType)
	assert.Equal(t, 100, ev.Significance)
	assert.Equal(t, model.SportBasketball, ev.Sport)

	ev, ok = h.Evaluate(game, state, Action{
		ID: "action-12", Type: "2pt", SubType: "Dunk", ShotMade: true, Period: 4, ClockSecs: 30,
	})
	require.True(t, ok)
	assert.Equal(t, "made_shot", ev.EventType)
	assert.LessOrEqual(t, ev.WinProbDelta, WinProbCap)
}

func TestParseISOClock(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"PT07M31.00S", 451},
		{"PT00M02.30S", 2.3},
		{"PT12M00.00S", 720},
		{"", 0},
		{"nonsense", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, parseISOClock(tt.in), 1e-9, tt.in)
	}
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, model.StatusScheduled, parseStatus(1, "7:00 pm ET"))
	assert.Equal(t, model.StatusInProgress, parseStatus(2, "Q3 4:12"))
	assert.Equal(t, model.StatusFinal, parseStatus(3, "Final"))
	assert.Equal(t, model.StatusPostponed, parseStatus(1, "Postponed"))
}
