// Package physics reconstructs ball flight from Statcast-style launch
// parameters: a point-mass model with gravity, quadratic drag, and
// spin-induced Magnus lift, integrated at a fixed timestep. The engine is
// pure and stateless — deterministic for a fixed dt and safe to call
// concurrently.
package physics

import "math"

// Internal units are feet, slugs, and seconds; mph and degrees at the
// boundary.
const (
	Gravity = 32.174 // ft/s^2

	ballMass   = 0.00996 // slugs (5.125 oz)
	ballRadius = 0.1208  // ft
	ballArea   = math.Pi * ballRadius * ballRadius

	dragCoefficient = 0.33

	seaLevelDensity = 0.0023769 // slug/ft^3 at 59F

	mphToFps = 1.46667
	degToRad = math.Pi / 180
)

// FenceSegment is one span of the outfield wall: its bearing from home
// plate, its distance, and its height.
type FenceSegment struct {
	Angle    float64 `json:"angle_deg"` // 0 = center field, negative toward left
	Distance float64 `json:"distance_ft"`
	Height   float64 `json:"height_ft"`
}

// Wind is the ambient wind at field level. Direction is the bearing the
// wind blows toward: 0 carries the ball out to center.
type Wind struct {
	Speed     float64 `json:"speed_mph"`
	Direction float64 `json:"direction_deg"`
}

// Params holds the environmental inputs of a reconstruction. Callers
// usually start from DefaultParams and override per stadium.
type Params struct {
	Gravity     float64        `json:"gravity"`
	Elevation   float64        `json:"elevation_ft"`
	Temperature float64        `json:"temperature_f"`
	Fence       []FenceSegment `json:"fence"`
	Wind        Wind           `json:"wind"`
}

// DefaultParams returns sea-level conditions with a generic symmetric
// outfield wall.
func DefaultParams() Params {
	return Params{
		Gravity:     Gravity,
		Elevation:   0,
		Temperature: 70,
		Fence: []FenceSegment{
			{Angle: -45, Distance: 330, Height: 8},
			{Angle: -22.5, Distance: 375, Height: 8},
			{Angle: 0, Distance: 400, Height: 8},
			{Angle: 22.5, Distance: 375, Height: 8},
			{Angle: 45, Distance: 330, Height: 8},
		},
	}
}

// airDensity approximates air density from elevation (barometric falloff)
// and temperature (ideal-gas correction against the 59F reference).
func airDensity(elevationFt, temperatureF float64) float64 {
	rho := seaLevelDensity * math.Exp(-elevationFt/30000)
	return rho * 518.67 / (459.67 + temperatureF)
}
