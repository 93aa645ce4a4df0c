// Package basketball monitors NBA games via the flat play-by-play action feed.
package basketball

// --------------------------------------------------------------------------
// Wire types — the subset of the action feed the detector reads
// --------------------------------------------------------------------------

type playByPlay struct {
	Game struct {
		GameStatusText string `json:"gameStatusText"`
		GameStatus     int    `json:"gameStatus"` // 1 scheduled, 2 live, 3 final
		Period         int    `json:"period"`
		GameClock      string `json:"gameClock"` // "PT07M31.00S"
		HomeTeam       struct {
			Score int `json:"score"`
		} `json:"homeTeam"`
		AwayTeam struct {
			Score int `json:"score"`
		} `json:"awayTeam"`
		Actions []feedAction `json:"actions"`
	} `json:"game"`
}

type feedAction struct {
	ActionNumber int     `json:"actionNumber"`
	ActionType   string  `json:"actionType"` // 2pt, 3pt, block, steal, turnover, rebound, foul
	SubType      string  `json:"subType"`    // DUNK, Layup, offensive, flagrant-type-1, ...
	ShotResult   string  `json:"shotResult"` // Made, Missed
	ShotDistance float64 `json:"shotDistance"`
	Period       int     `json:"period"`
	Clock        string  `json:"clock"`
	Description  string  `json:"description"`
	ScoreHome    string  `json:"scoreHome"`
	ScoreAway    string  `json:"scoreAway"`
}

// --------------------------------------------------------------------------
// Detector input — one flattened action
// --------------------------------------------------------------------------

// Action is one flattened play-by-play entry.
type Action struct {
	ID           string
	Type         string
	SubType      string
	ShotMade     bool
	ShotDistance float64
	Period       int
	ClockSecs    float64 // seconds remaining in the period
	Description  string
}

// PlayID implements feed.Play. Action numbers are stable for a game.
func (a Action) PlayID() string { return a.ID }
