package physics

import "math"

// Batted-ball integration: 10ms steps over a 10s ceiling. Fly balls land
// within ~7s; the ceiling only guards degenerate inputs.
const (
	battedBallDt      = 0.010
	battedBallMaxTime = 10.0

	contactHeight = 3.0 // ft above the plate at contact
)

// BattedBall is the tracked launch of one batted ball. Spin is optional:
// zero spin reconstructs a drag-and-gravity-only flight.
type BattedBall struct {
	ExitVelocity float64 // mph
	LaunchAngle  float64 // degrees above horizontal
	SprayAngle   float64 // degrees, 0 = center field, positive toward right
	SpinRate     float64 // rpm
	SpinAxis     float64 // degrees, 0 = pure backspin
}

// ReconstructBattedBall integrates a batted ball's flight from launch to
// landing (or the time ceiling). Wind from params is applied through the
// air-relative drag term.
func ReconstructBattedBall(bb BattedBall, params Params) *Trajectory {
	speed := bb.ExitVelocity * mphToFps
	la := bb.LaunchAngle * degToRad
	spray := bb.SprayAngle * degToRad

	initial := Sample{
		Position: Vec3{Z: contactHeight},
		Velocity: Vec3{
			X: speed * math.Cos(la) * math.Sin(spray),
			Y: speed * math.Cos(la) * math.Cos(spray),
			Z: speed * math.Sin(la),
		},
	}

	rho := airDensity(params.Elevation, params.Temperature)
	wind := windVector(params.Wind)
	sp := decomposeSpin(bb.SpinRate, bb.SpinAxis)

	return integrate(initial, sp, rho, params.Gravity, wind, battedBallDt, battedBallMaxTime,
		func(s Sample) bool { return s.Position.Z <= 0 })
}

// windVector converts field-level wind into a velocity vector. Direction 0
// blows out to center field (+y).
func windVector(w Wind) Vec3 {
	speed := w.Speed * mphToFps
	dir := w.Direction * degToRad
	return Vec3{
		X: speed * math.Sin(dir),
		Y: speed * math.Cos(dir),
	}
}
