// Package gridiron monitors NFL games via the scoreboard event feed.
package gridiron

// --------------------------------------------------------------------------
// Wire types — the subset of the event summary the detector reads
// --------------------------------------------------------------------------

type eventSummary struct {
	Header struct {
		Competitions []struct {
			Status struct {
				Period       int     `json:"period"`
				Clock        float64 `json:"clock"` // seconds remaining in period
				DisplayClock string  `json:"displayClock"`
				Type         struct {
					Name      string `json:"name"` // STATUS_IN_PROGRESS, STATUS_FINAL, ...
					Completed bool   `json:"completed"`
				} `json:"type"`
			} `json:"status"`
			Competitors []struct {
				HomeAway string `json:"homeAway"`
				Score    string `json:"score"`
			} `json:"competitors"`
		} `json:"competitions"`
	} `json:"header"`
	Drives struct {
		Current struct {
			Plays []feedPlay `json:"plays"`
		} `json:"current"`
	} `json:"drives"`
}

type feedPlay struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Type struct {
		Text string `json:"text"`
	} `json:"type"`
	Period struct {
		Number int `json:"number"`
	} `json:"period"`
	Clock struct {
		DisplayValue string `json:"displayValue"` // "M:SS"
	} `json:"clock"`
	StatYardage int  `json:"statYardage"`
	ScoringPlay bool `json:"scoringPlay"`
	Start       down `json:"start"`
	End         down `json:"end"`
}

type down struct {
	Down           int `json:"down"`
	Distance       int `json:"distance"`
	YardsToEndzone int `json:"yardsToEndzone"` // yards from the opposing goal line
}

// --------------------------------------------------------------------------
// Detector input — one flattened play
// --------------------------------------------------------------------------

// Play is one flattened play from the current drive.
type Play struct {
	ID             string
	Text           string
	TypeText       string
	Period         int
	ClockSecs      int  // seconds remaining in the period
	Yards          int
	ScoringPlay    bool
	Down           int  // down the play started on
	Distance       int
	YardsToEndzone int  // yards from the opposing goal line at the snap
	Converted      bool // gained the line to gain
}

// PlayID implements feed.Play.
func (p Play) PlayID() string { return p.ID }
