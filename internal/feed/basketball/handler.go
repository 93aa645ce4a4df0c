package basketball

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ahump20/blaze-live/internal/feed"
	"github.com/ahump20/blaze-live/internal/model"
)

// Handler implements feed.Handler for NBA games.
type Handler struct {
	client *feed.Client
	logger *slog.Logger
}

// NewHandler creates the NBA feed handler.
func NewHandler(client *feed.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{client: client, logger: logger}
}

// Sport returns the tag this handler owns.
func (h *Handler) Sport() model.Sport { return model.SportBasketball }

// Fetch retrieves the play-by-play feed for one game.
func (h *Handler) Fetch(ctx context.Context, externalGameID string) (*feed.Snapshot, error) {
	var raw playByPlay
	if err := h.client.GetJSON(ctx, fmt.Sprintf("/playbyplay/playbyplay_%s.json", externalGameID), &raw); err != nil {
		return nil, fmt.Errorf("fetch NBA feed %s: %w", externalGameID, err)
	}
	return parseSnapshot(&raw), nil
}

// Evaluate scores one action against the current game state.
func (h *Handler) Evaluate(game *model.MonitoredGame, state model.GameState, play feed.Play) (*model.LiveEvent, bool) {
	a, ok := play.(Action)
	if !ok {
		return nil, false
	}

	score := ScoreAction(a)
	if score < QualifyThreshold {
		return nil, false
	}

	leverage := LeverageIndex(state, a.ClockSecs)

	return &model.LiveEvent{
		GameID:       game.ID,
		Sport:        model.SportBasketball,
		EventType:    eventType(a),
		DetectedAt:   time.Now().UTC(),
		GameClock:    fmt.Sprintf("Q%d %s", a.Period, clockString(a.ClockSecs)),
		Leverage:     leverage,
		WinProbDelta: feed.WinProbDelta(float64(score)/100, leverage, WinProbCap),
		Significance: score,
		RawPayload: map[string]any{
			"play_id":       a.ID,
			"action_type":   a.Type,
			"sub_type":      a.SubType,
			"shot_made":     a.ShotMade,
			"shot_distance": a.ShotDistance,
			"description":   a.Description,
		},
	}, true
}

func eventType(a Action) string {
	switch a.Type {
	case "2pt", "3pt":
		if a.ClockSecs <= 2 {
			return "buzzer_beater"
		}
		return "made_shot"
	case "foul":
		return "hostile_foul"
	default:
		return a.Type
	}
}

// --------------------------------------------------------------------------
// Feed parsing
// --------------------------------------------------------------------------

func parseSnapshot(raw *playByPlay) *feed.Snapshot {
	g := raw.Game
	state := model.GameState{
		Status:    parseStatus(g.GameStatus, g.GameStatusText),
		Period:    g.Period,
		Clock:     clockString(parseISOClock(g.GameClock)),
		HomeScore: g.HomeTeam.Score,
		AwayScore: g.AwayTeam.Score,
	}

	snap := &feed.Snapshot{State: state}
	for _, a := range g.Actions {
		snap.Plays = append(snap.Plays, flattenAction(a))
	}
	return snap
}

func parseStatus(code int, text string) model.GameStatus {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "postponed"):
		return model.StatusPostponed
	case strings.Contains(lower, "suspended"):
		return model.StatusSuspended
	}
	switch code {
	case 2:
		return model.StatusInProgress
	case 3:
		return model.StatusFinal
	default:
		return model.StatusScheduled
	}
}

func flattenAction(a feedAction) Action {
	return Action{
		ID:           fmt.Sprintf("action-%d", a.ActionNumber),
		Type:         a.ActionType,
		SubType:      a.SubType,
		ShotMade:     strings.EqualFold(a.ShotResult, "Made"),
		ShotDistance: a.ShotDistance,
		Period:       a.Period,
		ClockSecs:    parseISOClock(a.Clock),
		Description:  a.Description,
	}
}

// parseISOClock converts feed clocks like "PT07M31.50S" to seconds
// remaining. Returns 0 for anything unparseable.
func parseISOClock(s string) float64 {
	s = strings.TrimPrefix(s, "PT")
	mIdx := strings.Index(s, "M")
	if mIdx < 0 {
		return 0
	}
	mins, err := strconv.Atoi(s[:mIdx])
	if err != nil {
		return 0
	}
	secsPart := strings.TrimSuffix(s[mIdx+1:], "S")
	secs, err := strconv.ParseFloat(secsPart, 64)
	if err != nil {
		return 0
	}
	return float64(mins)*60 + secs
}

func clockString(secs float64) string {
	whole := int(secs)
	return fmt.Sprintf("%d:%02d", whole/60, whole%60)
}
