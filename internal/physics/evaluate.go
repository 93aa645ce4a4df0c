package physics

import (
	"fmt"
	"math"
)

// Derived evaluators: pure functions over a finished Trajectory.

// FenceResult reports whether a batted ball clears the outfield wall.
type FenceResult struct {
	Clears  bool         `json:"clears"`
	Margin  float64      `json:"clearance_margin_ft"` // ball height minus wall height at the wall
	Segment FenceSegment `json:"segment"`
}

// FenceClearance finds the fence segment nearest the trajectory's exit
// bearing, interpolates the ball's height at that segment's distance, and
// compares it to the wall. Clearing requires strictly greater height: a
// ball that meets the wall exactly stays in play.
//
// An empty fence list is a caller contract violation.
func FenceClearance(tr *Trajectory, params Params) (FenceResult, error) {
	if len(params.Fence) == 0 {
		return FenceResult{}, fmt.Errorf("fence geometry is empty")
	}
	if len(tr.Samples) < 2 {
		return FenceResult{}, fmt.Errorf("trajectory has no flight samples")
	}

	bearing := exitBearing(tr)
	seg := params.Fence[0]
	for _, s := range params.Fence[1:] {
		if math.Abs(s.Angle-bearing) < math.Abs(seg.Angle-bearing) {
			seg = s
		}
	}

	height, reached := heightAtDistance(tr, seg.Distance)
	if !reached {
		// Landed short of the wall.
		return FenceResult{Clears: false, Margin: -seg.Height, Segment: seg}, nil
	}

	return FenceResult{
		Clears:  height > seg.Height,
		Margin:  height - seg.Height,
		Segment: seg,
	}, nil
}

// exitBearing is the horizontal direction of flight in degrees, taken from
// the last sample's position (0 = center field).
func exitBearing(tr *Trajectory) float64 {
	last := tr.Samples[len(tr.Samples)-1].Position
	return math.Atan2(last.X, last.Y) / degToRad
}

// heightAtDistance linearly interpolates the ball's height at a horizontal
// distance from the two bracketing samples. reached is false when the
// trajectory never gets that far.
func heightAtDistance(tr *Trajectory, distance float64) (height float64, reached bool) {
	prev := tr.Samples[0]
	prevDist := math.Hypot(prev.Position.X, prev.Position.Y)
	for _, s := range tr.Samples[1:] {
		dist := math.Hypot(s.Position.X, s.Position.Y)
		if dist >= distance {
			span := dist - prevDist
			if span == 0 {
				return s.Position.Z, true
			}
			frac := (distance - prevDist) / span
			return prev.Position.Z + frac*(s.Position.Z-prev.Position.Z), true
		}
		prev, prevDist = s, dist
	}
	return 0, false
}

// CatchResult estimates whether a fielder can intercept the ball.
type CatchResult struct {
	Probability     float64 `json:"catch_probability"`
	TimeToReach     float64 `json:"time_to_reach_s"`
	TimeMargin      float64 `json:"time_margin_s"` // hang time minus time to reach
	RouteEfficiency float64 `json:"route_efficiency"`
}

// catchBuffer is the reaction-and-settle time a fielder needs beyond the
// raw sprint; the catch logistic is centered on it.
const catchBuffer = 0.5

// CatchProbability estimates interception feasibility for a fielder
// starting at start with a constant running speed (ft/s). Route efficiency
// is reported as the constant 1.0 — straight-line routes, no pathing.
func CatchProbability(tr *Trajectory, start Vec3, speed float64) (CatchResult, error) {
	if tr.Landing == nil {
		return CatchResult{}, fmt.Errorf("trajectory has no landing point")
	}
	if speed <= 0 {
		return CatchResult{}, fmt.Errorf("fielder speed must be positive")
	}

	run := math.Hypot(tr.Landing.X-start.X, tr.Landing.Y-start.Y)
	timeToReach := run / speed
	margin := tr.HangTime - timeToReach

	return CatchResult{
		Probability:     1 / (1 + math.Exp(-4*(margin-catchBuffer))),
		TimeToReach:     timeToReach,
		TimeMargin:      margin,
		RouteEfficiency: 1.0,
	}, nil
}
