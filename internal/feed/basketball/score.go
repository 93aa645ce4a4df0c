package basketball

import "strings"

// QualifyThreshold is the minimum significance score that persists an event.
const QualifyThreshold = 40

// regulationPeriods is the number of quarters before overtime.
const regulationPeriods = 4

// ScoreAction rates one play-by-play action. Made shots escalate with how
// little clock remains in the final period; defensive plays and hustle plays
// carry flat bands.
func ScoreAction(a Action) int {
	score := 0
	finalPeriod := a.Period >= regulationPeriods

	switch a.Type {
	case "3pt":
		if a.ShotMade {
			score += 35
		}
	case "2pt":
		if a.ShotMade {
			if isRimFinish(a.SubType) {
				score += 30
			} else {
				score += 20
			}
		}
	case "block":
		score += 35
	case "steal":
		score += 30
	case "turnover":
		score += 25
	case "rebound":
		if strings.EqualFold(a.SubType, "offensive") {
			score += 15
		} else {
			score += 5
		}
	case "foul":
		if isHostileFoul(a.SubType) {
			score += 35
		}
	}

	// Clutch bonuses stack on made shots late in the final period.
	if a.ShotMade && finalPeriod {
		switch {
		case a.ClockSecs <= 120:
			score += 40
		case a.ClockSecs <= 300:
			score += 20
		}
	}

	// Buzzer-beaters qualify on their own in any period.
	if a.ShotMade && a.ClockSecs <= 2 {
		score += 50
	}

	return clampScore(score)
}

func isRimFinish(subType string) bool {
	lower := strings.ToLower(subType)
	return strings.Contains(lower, "dunk") || strings.Contains(lower, "layup") ||
		strings.Contains(lower, "alley oop")
}

func isHostileFoul(subType string) bool {
	lower := strings.ToLower(subType)
	return strings.Contains(lower, "flagrant") || strings.Contains(lower, "technical")
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
