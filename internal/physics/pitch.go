package physics

import "math"

// Pitch integration: 1ms steps over a 1s ceiling. Real flight is ~0.4s; the
// fine step is needed for break accuracy over that window.
const (
	pitchDt      = 0.001
	pitchMaxTime = 1.0

	// Release geometry defaults when tracking omits the release point.
	defaultReleaseDistance = 54.5 // ft from the plate
	defaultReleaseHeight   = 5.8  // ft

	// Pitches leave the hand on a fixed shallow downward angle.
	releaseAngleDeg = 1.5
)

// Pitch is the tracked release of one pitch.
type Pitch struct {
	Velocity     float64    // mph at release
	SpinRate     float64    // rpm
	SpinAxis     float64    // degrees, 0 = pure backspin
	ReleasePoint [3]float64 // ft: lateral, distance to plate, height; zero uses defaults
}

// ReconstructPitch integrates a pitch from release until it crosses the
// front of the plate (y reaches zero) or the time ceiling. No wind: pitch
// flight is too short and too low for field-level wind to matter.
func ReconstructPitch(p Pitch, params Params) *Trajectory {
	release := Vec3{X: p.ReleasePoint[0], Y: p.ReleasePoint[1], Z: p.ReleasePoint[2]}
	if release.Y == 0 {
		release.Y = defaultReleaseDistance
	}
	if release.Z == 0 {
		release.Z = defaultReleaseHeight
	}

	speed := p.Velocity * mphToFps
	ra := releaseAngleDeg * degToRad
	initial := Sample{
		Position: release,
		Velocity: Vec3{
			Y: -speed * math.Cos(ra), // toward the plate
			Z: -speed * math.Sin(ra),
		},
	}

	rho := airDensity(params.Elevation, params.Temperature)
	sp := decomposeSpin(p.SpinRate, p.SpinAxis)

	return integrate(initial, sp, rho, params.Gravity, Vec3{}, pitchDt, pitchMaxTime,
		func(s Sample) bool { return s.Position.Y <= 0 })
}
