package baseball

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ahump20/blaze-live/internal/feed"
	"github.com/ahump20/blaze-live/internal/model"
)

// Handler implements feed.Handler for MLB games.
type Handler struct {
	client *feed.Client
	logger *slog.Logger
}

// NewHandler creates the MLB feed handler.
func NewHandler(client *feed.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{client: client, logger: logger}
}

// Sport returns the tag this handler owns.
func (h *Handler) Sport() model.Sport { return model.SportBaseball }

// Fetch retrieves the live feed for one game and flattens it into a
// snapshot: current game state plus the full play list.
func (h *Handler) Fetch(ctx context.Context, externalGameID string) (*feed.Snapshot, error) {
	var raw liveFeed
	if err := h.client.GetJSON(ctx, fmt.Sprintf("/game/%s/feed/live", externalGameID), &raw); err != nil {
		return nil, fmt.Errorf("fetch MLB feed %s: %w", externalGameID, err)
	}
	return parseSnapshot(&raw), nil
}

// Evaluate scores one play. Plays can qualify along several paths (contact
// quality, pitch quality, defensive difficulty, scoring context); the
// highest-scoring path wins.
func (h *Handler) Evaluate(game *model.MonitoredGame, state model.GameState, play feed.Play) (*model.LiveEvent, bool) {
	p, ok := play.(Play)
	if !ok {
		return nil, false
	}

	leverage := LeverageIndex(state)

	type candidate struct {
		eventType string
		score     int
	}
	var candidates []candidate

	if p.Hit != nil {
		eventType := "batted_ball"
		if p.HomeRun {
			eventType = "home_run"
		}
		candidates = append(candidates, candidate{eventType, ScoreBattedBall(*p.Hit, p.HomeRun)})

		if p.IsOut && !p.ScoringPlay {
			candidates = append(candidates, candidate{"defensive_play", ScoreDefense(*p.Hit)})
		}
	}
	if p.LastPitch != nil {
		candidates = append(candidates, candidate{"pitch", ScorePitch(*p.LastPitch)})
	}
	if p.ScoringPlay {
		candidates = append(candidates, candidate{"scoring_play", ScoreScoringPlay(leverage)})
	}

	best := candidate{}
	for _, c := range candidates {
		if c.score > best.score {
			best = c
		}
	}
	if best.score < QualifyThreshold {
		return nil, false
	}

	score := clampScore(best.score)
	return &model.LiveEvent{
		GameID:       game.ID,
		Sport:        model.SportBaseball,
		EventType:    best.eventType,
		DetectedAt:   time.Now().UTC(),
		GameClock:    fmt.Sprintf("%s %d", strings.ToLower(p.HalfInning), p.Inning),
		Leverage:     leverage,
		WinProbDelta: feed.WinProbDelta(float64(score)/100, leverage, WinProbCap),
		Significance: score,
		RawPayload: map[string]any{
			"play_id":      p.ID,
			"result":       p.ResultEvent,
			"description":  p.Description,
			"inning":       p.Inning,
			"half_inning":  p.HalfInning,
			"scoring_play": p.ScoringPlay,
		},
		Launch: launchParams(p),
	}, true
}

// --------------------------------------------------------------------------
// Feed parsing
// --------------------------------------------------------------------------

func parseSnapshot(raw *liveFeed) *feed.Snapshot {
	ls := raw.LiveData.Linescore
	state := model.GameState{
		Status:     parseStatus(raw.GameData.Status.AbstractGameState, raw.GameData.Status.DetailedState),
		Period:     ls.CurrentInning,
		HomeScore:  ls.Teams.Home.Runs,
		AwayScore:  ls.Teams.Away.Runs,
		InningHalf: strings.ToLower(ls.InningHalf),
		Outs:       ls.Outs,
		Runners: [3]bool{
			ls.Offense.First != nil,
			ls.Offense.Second != nil,
			ls.Offense.Third != nil,
		},
	}

	windSpeed, windDir := parseWind(raw.GameData.Weather.Wind)
	temp, _ := strconv.ParseFloat(raw.GameData.Weather.Temp, 64)

	snap := &feed.Snapshot{State: state}
	for _, fp := range raw.LiveData.Plays.AllPlays {
		snap.Plays = append(snap.Plays, flattenPlay(fp, windSpeed, windDir, temp))
	}
	return snap
}

func parseStatus(abstract, detailed string) model.GameStatus {
	switch {
	case strings.EqualFold(detailed, "Postponed"):
		return model.StatusPostponed
	case strings.HasPrefix(detailed, "Suspended"):
		return model.StatusSuspended
	}
	switch abstract {
	case "Live":
		return model.StatusInProgress
	case "Final":
		return model.StatusFinal
	default:
		return model.StatusScheduled
	}
}

// parseWind extracts speed and a coarse direction from feed strings like
// "12 mph, Out To CF". Direction falls back to 0 when unrecognized.
func parseWind(s string) (speed, direction float64) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, 0
	}
	speed, _ = strconv.ParseFloat(fields[0], 64)

	switch {
	case strings.Contains(s, "Out To"):
		direction = 0 // blowing toward the outfield
	case strings.Contains(s, "In From"):
		direction = 180
	case strings.Contains(s, "L To R"):
		direction = 90
	case strings.Contains(s, "R To L"):
		direction = 270
	}
	return speed, direction
}

func flattenPlay(fp feedPlay, windSpeed, windDir, temp float64) Play {
	p := Play{
		ID:          fmt.Sprintf("atbat-%d", fp.About.AtBatIndex),
		Inning:      fp.About.Inning,
		HalfInning:  fp.About.HalfInning,
		ResultEvent: fp.Result.Event,
		Description: fp.Result.Description,
		HomeRun:     strings.EqualFold(fp.Result.Event, "Home Run"),
		ScoringPlay: fp.About.IsScoringPlay,
		IsOut:       fp.Result.IsOut,
	}

	// The last tracked pitch and the contact event (if any) carry the
	// Statcast data.
	for _, ev := range fp.PlayEvents {
		if ev.HitData != nil {
			p.Hit = &BattedBall{
				ExitVelocity: ev.HitData.LaunchSpeed,
				LaunchAngle:  ev.HitData.LaunchAngle,
				Distance:     ev.HitData.TotalDistance,
				Trajectory:   ev.HitData.Trajectory,
			}
		}
		if ev.PitchData != nil {
			p.LastPitch = &Pitch{
				Velocity: ev.PitchData.StartSpeed,
				SpinRate: ev.PitchData.Breaks.SpinRate,
				SpinAxis: ev.PitchData.Breaks.SpinDirection,
				BreakInches: math.Hypot(
					ev.PitchData.Breaks.BreakVertical,
					ev.PitchData.Breaks.BreakHorizontal),
				ReleasePoint: [3]float64{
					ev.PitchData.Coordinates.X0,
					ev.PitchData.Coordinates.Y0,
					ev.PitchData.Coordinates.Z0,
				},
			}
		}
	}

	p.windSpeed, p.windDirection, p.temperature = windSpeed, windDir, temp
	return p
}

// launchParams embeds the subset of tracked data relevant to the detection
// path, plus the game's environment.
func launchParams(p Play) *model.LaunchParameters {
	if p.Hit == nil && p.LastPitch == nil {
		return nil
	}
	lp := &model.LaunchParameters{
		WindSpeed:     p.windSpeed,
		WindDirection: p.windDirection,
		Temperature:   p.temperature,
	}
	if p.Hit != nil {
		lp.ExitVelocity = p.Hit.ExitVelocity
		lp.LaunchAngle = p.Hit.LaunchAngle
		lp.Distance = p.Hit.Distance
	}
	if p.LastPitch != nil {
		lp.ReleaseVelocity = p.LastPitch.Velocity
		lp.ReleasePoint = p.LastPitch.ReleasePoint
		lp.SpinRate = p.LastPitch.SpinRate
		lp.SpinAxis = p.LastPitch.SpinAxis
	}
	return lp
}
