package gridiron

import "strings"

// QualifyThreshold is the minimum significance score that persists an event.
const QualifyThreshold = 40

// regulationPeriods is the number of quarters before overtime.
const regulationPeriods = 4

// turnoverKeywords mark a change of possession in the play text.
var turnoverKeywords = []string{
	"intercept", "fumble", "recovered by", "muffed",
}

// ScorePlay rates one play. Bands stack: a long touchdown in the red zone
// during a two-minute drill accumulates every applicable bonus before the
// 0-100 clamp.
func ScorePlay(p Play) int {
	score := 0

	if p.ScoringPlay {
		score += 50
	}

	switch {
	case p.Yards >= 40:
		score += 40
	case p.Yards >= 25:
		score += 30
	case p.Yards >= 15:
		score += 20
	}

	if isTurnover(p.Text) {
		score += 45
	}

	if p.Down == 4 && p.Converted {
		score += 35
	}

	// Red zone: snapped inside the opposing 20.
	if p.YardsToEndzone > 0 && p.YardsToEndzone <= 20 {
		score += 15
	}

	// Two-minute drill in the final regulation period.
	if p.Period == regulationPeriods && p.ClockSecs <= 120 {
		score += 25
	}

	if p.Period > regulationPeriods {
		score += 30
	}

	return clampScore(score)
}

func isTurnover(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range turnoverKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
