package gridiron

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

// Handler implements feed.Handler for NFL games.
type Handler struct {
	client *feed.Client
	logger *slog.Logger
}

// NewHandler creates the NFL feed handler.
func NewHandler(client *feed.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{client: client, logger: logger}
}

// Sport returns the tag this handler owns.
func (h *Handler) Sport() model.Sport { return model.SportGridiron }

// Fetch retrieves the event summary for one game and flattens the current
// drive's play list into a snapshot.
func (h *Handler) Fetch(ctx context.Context, externalGameID string) (*feed.Snapshot, error) {
	var raw eventSummary
	if err := h.client.GetJSON(ctx, fmt.Sprintf("/summary?event=%s", externalGameID), &raw); err != nil {
		return nil, fmt.Errorf("fetch NFL feed %s: %w", externalGameID, err)
	}
	return parseSnapshot(&raw), nil
}

// Evaluate scores one play against the current game state.
func (h *Handler) Evaluate(game *model.MonitoredGame, state model.GameState, play feed.Play) (*model.LiveEvent, bool) {
	p, ok := play.(Play)
	if !ok {
		return nil, false
	}

	score := ScorePlay(p)
	if score < QualifyThreshold {
		return nil, false
	}

	leverage := LeverageIndex(state, p.Down, p.Distance)
	eventType := "big_play"
	switch {
	case p.ScoringPlay:
		eventType = "scoring_play"
	case isTurnover(p.Text):
		eventType = "turnover"
	case p.Down == 4 && p.Converted:
		eventType = "fourth_down_conversion"
	}

	return &model.LiveEvent{
		GameID:       game.ID,
		Sport:        model.SportGridiron,
		EventType:    eventType,
		DetectedAt:   time.Now().UTC(),
		GameClock:    fmt.Sprintf("Q%d %s", p.Period, clockString(p.ClockSecs)),
		Leverage:     leverage,
		WinProbDelta: feed.WinProbDelta(float64(score)/100, leverage, WinProbCap),
		Significance: score,
		RawPayload: map[string]any{
			"play_id":      p.ID,
			"text":         p.Text,
			"type":         p.TypeText,
			"yards":        p.Yards,
			"down":         p.Down,
			"distance":     p.Distance,
			"scoring_play": p.ScoringPlay,
		},
	}, true
}

// --------------------------------------------------------------------------
// Feed parsing
// --------------------------------------------------------------------------

func parseSnapshot(raw *eventSummary) *feed.Snapshot {
	snap := &feed.Snapshot{}
	if len(raw.Header.Competitions) == 0 {
		return snap
	}
	comp := raw.Header.Competitions[0]

	state := model.GameState{
		Status: parseStatus(comp.Status.Type.Name),
		Period: comp.Status.Period,
		Clock:  comp.Status.DisplayClock,
	}
	for _, c := range comp.Competitors {
		score, _ := strconv.Atoi(c.Score)
		if c.HomeAway == "home" {
			state.HomeScore = score
		} else {
			state.AwayScore = score
		}
	}
	snap.State = state

	for _, fp := range raw.Drives.Current.Plays {
		snap.Plays = append(snap.Plays, flattenPlay(fp))
	}
	return snap
}

func parseStatus(name string) model.GameStatus {
	switch name {
	case "STATUS_IN_PROGRESS", "STATUS_HALFTIME", "STATUS_END_PERIOD":
		return model.StatusInProgress
	case "STATUS_FINAL":
		return model.StatusFinal
	case "STATUS_POSTPONED", "STATUS_CANCELED":
		return model.StatusPostponed
	case "STATUS_SUSPENDED", "STATUS_DELAYED":
		return model.StatusSuspended
	default:
		return model.StatusScheduled
	}
}

func flattenPlay(fp feedPlay) Play {
	return Play{
		ID:             fp.ID,
		Text:           fp.Text,
		TypeText:       fp.Type.Text,
		Period:         fp.Period.Number,
		ClockSecs:      parseClock(fp.Clock.DisplayValue),
		Yards:          fp.StatYardage,
		ScoringPlay:    fp.ScoringPlay,
		Down:           fp.Start.Down,
		Distance:       fp.Start.Distance,
		YardsToEndzone: fp.Start.YardsToEndzone,
		Converted:      fp.Start.Distance > 0 && fp.StatYardage >= fp.Start.Distance,
	}
}

// parseClock converts "M:SS" display clocks to seconds remaining.
func parseClock(s string) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	mins, _ := strconv.Atoi(parts[0])
	secs, _ := strconv.Atoi(parts[1])
	return mins*60 + secs
}

func clockString(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
