// Package baseball monitors MLB games: live-feed parsing, play detection,
// and Statcast launch-parameter extraction.
package baseball

// --------------------------------------------------------------------------
// Wire types — the subset of the live feed the detector reads
// --------------------------------------------------------------------------

type liveFeed struct {
	GameData struct {
		Status struct {
			AbstractGameState string `json:"abstractGameState"` // Preview, Live, Final
			DetailedState     string `json:"detailedState"`     // Postponed, Suspended, ...
		} `json:"status"`
		Weather struct {
			Temp string `json:"temp"`
			Wind string `json:"wind"` // e.g. "12 mph, Out To CF"
		} `json:"weather"`
	} `json:"gameData"`
	LiveData struct {
		Linescore struct {
			CurrentInning int    `json:"currentInning"`
			InningHalf    string `json:"inningHalf"` // Top, Bottom
			Outs          int    `json:"outs"`
			Teams         struct {
				Home struct {
					Runs int `json:"runs"`
				} `json:"home"`
				Away struct {
					Runs int `json:"runs"`
				} `json:"away"`
			} `json:"teams"`
			Offense struct {
				First  *struct{} `json:"first,omitempty"`
				Second *struct{} `json:"second,omitempty"`
				Third  *struct{} `json:"third,omitempty"`
			} `json:"offense"`
		} `json:"linescore"`
		Plays struct {
			AllPlays []feedPlay `json:"allPlays"`
		} `json:"plays"`
	} `json:"liveData"`
}

type feedPlay struct {
	Result struct {
		Type        string `json:"type"`
		Event       string `json:"event"` // Home Run, Single, Strikeout, ...
		Description string `json:"description"`
		RBI         int    `json:"rbi"`
		IsOut       bool   `json:"isOut"`
	} `json:"result"`
	About struct {
		AtBatIndex    int    `json:"atBatIndex"`
		Inning        int    `json:"inning"`
		HalfInning    string `json:"halfInning"`
		IsScoringPlay bool   `json:"isScoringPlay"`
	} `json:"about"`
	PlayEvents []playEvent `json:"playEvents"`
}

type playEvent struct {
	Details struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"details"`
	HitData *struct {
		LaunchSpeed   float64 `json:"launchSpeed"`
		LaunchAngle   float64 `json:"launchAngle"`
		TotalDistance float64 `json:"totalDistance"`
		Trajectory    string  `json:"trajectory"` // fly_ball, line_drive, ...
	} `json:"hitData,omitempty"`
	PitchData *struct {
		StartSpeed float64 `json:"startSpeed"`
		Breaks     struct {
			SpinRate        float64 `json:"spinRate"`
			BreakVertical   float64 `json:"breakVerticalInduced"`
			BreakHorizontal float64 `json:"breakHorizontal"`
			SpinDirection   float64 `json:"spinDirection"`
		} `json:"breaks"`
		Coordinates struct {
			X0 float64 `json:"x0"`
			Y0 float64 `json:"y0"`
			Z0 float64 `json:"z0"`
		} `json:"coordinates"`
	} `json:"pitchData,omitempty"`
}

// --------------------------------------------------------------------------
// Detector input — one flattened play
// --------------------------------------------------------------------------

// BattedBall carries tracked contact data for one batted ball.
type BattedBall struct {
	ExitVelocity float64 // mph
	LaunchAngle  float64 // degrees
	Distance     float64 // feet
	Trajectory   string
}

// Pitch carries tracked release data for one pitch.
type Pitch struct {
	Velocity     float64 // mph at release
	SpinRate     float64 // rpm
	SpinAxis     float64 // degrees
	BreakInches  float64 // total movement
	ReleasePoint [3]float64
}

// Play is one flattened at-bat outcome from the live feed.
type Play struct {
	ID          string
	Inning      int
	HalfInning  string
	ResultEvent string
	Description string
	HomeRun     bool
	ScoringPlay bool
	IsOut       bool
	Hit         *BattedBall
	LastPitch   *Pitch

	// Stadium environment at fetch time, carried onto launch parameters.
	windSpeed     float64
	windDirection float64
	temperature   float64
}

// PlayID implements feed.Play. The at-bat index is stable for a game.
func (p Play) PlayID() string { return p.ID }
