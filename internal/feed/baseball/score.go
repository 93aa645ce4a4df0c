package baseball

// Significance scoring is a weighted-threshold heuristic evaluated per play.
// Every band below is a pure function of the tracked data at detection time.

// QualifyThreshold is the minimum significance score that persists an event.
const QualifyThreshold = 40

// rareTrajectories are batted-ball classes uncommon enough to be notable on
// their own.
var rareTrajectories = map[string]bool{
	"bunt_line_drive": true,
	"bunt_popup":      true,
}

// ScoreBattedBall rates tracked contact quality.
func ScoreBattedBall(bb BattedBall, homeRun bool) int {
	score := 0

	switch {
	case bb.ExitVelocity >= 110:
		score += 30
	case bb.ExitVelocity >= 100:
		score += 20
	}

	if bb.LaunchAngle >= 40 || bb.LaunchAngle <= -40 {
		score += 20
	}

	switch {
	case bb.Distance >= 450:
		score += 30
	case bb.Distance >= 400:
		score += 20
	}

	if homeRun {
		score += 25
	}
	if rareTrajectories[bb.Trajectory] {
		score += 10
	}
	return score
}

// ScorePitch rates a tracked pitch by spin, velocity, and movement.
func ScorePitch(p Pitch) int {
	score := 0

	switch {
	case p.SpinRate >= 3000:
		score += 30
	case p.SpinRate >= 2700:
		score += 20
	}

	switch {
	case p.Velocity >= 100:
		score += 30
	case p.Velocity >= 97:
		score += 20
	}

	if p.BreakInches >= 15 {
		score += 25
	}
	return score
}

// ScoreDefense rates a fielding out by an estimated catch-difficulty index.
// Balls hit hard and far are hard to run down.
func ScoreDefense(bb BattedBall) int {
	difficulty := (bb.ExitVelocity / 100) * (bb.Distance / 300)
	if difficulty <= 1.2 {
		return 0
	}
	return 50 + int((difficulty-1.2)*25)
}

// ScoreScoringPlay rates a run-scoring play by the leverage it occurred in.
// Low-leverage runs are routine; high-leverage ones swing the game.
func ScoreScoringPlay(leverage float64) int {
	if leverage < 1.5 {
		return 0
	}
	return 60 + int((leverage-1.5)*10)
}

// clampScore bounds a raw score to the 0-100 scale events are stored with.
func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
