package physics

import "math"

// Vec3 is a position or velocity in field coordinates: x lateral (positive
// toward right field), y toward center field, z up. Pitches reuse y as the
// distance remaining to the plate.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Sample is one integration step: time, position, velocity.
type Sample struct {
	T        float64 `json:"t"`
	Position Vec3    `json:"position"`
	Velocity Vec3    `json:"velocity"`
}

// Trajectory is the full output of one reconstruction. Produced fresh per
// call, never cached.
type Trajectory struct {
	Samples    []Sample `json:"samples"`
	Landing    *Vec3    `json:"landing,omitempty"` // nil if the time ceiling hit first
	HangTime   float64  `json:"hang_time_s"`
	PeakHeight float64  `json:"peak_height_ft"`
	Distance   float64  `json:"distance_ft"` // horizontal distance to landing
}

// spin is angular velocity decomposed per the tracked spin axis: the
// backspin component produces vertical lift, the sidespin component lateral
// (pitch: also longitudinal) deflection.
type spin struct {
	backspin float64 // rad/s
	sidespin float64 // rad/s
}

// decomposeSpin converts tracked rpm and axis degrees into components.
// Axis 0 is pure backspin.
func decomposeSpin(rateRPM, axisDeg float64) spin {
	omega := rateRPM * 2 * math.Pi / 60
	return spin{
		backspin: omega * math.Cos(axisDeg*degToRad),
		sidespin: omega * math.Sin(axisDeg*degToRad),
	}
}

// accelerate computes the net acceleration on the ball: gravity, drag
// opposing the air-relative velocity, and Magnus lift from the spin
// components. Drag and Magnus short-circuit to zero at zero speed.
func accelerate(vel Vec3, sp spin, rho, gravity float64, wind Vec3) Vec3 {
	acc := Vec3{Z: -gravity}

	rel := Vec3{vel.X - wind.X, vel.Y - wind.Y, vel.Z - wind.Z}
	speed := rel.Norm()
	if speed == 0 {
		return acc
	}

	// Drag: 1/2 Cd rho A v^2, opposite the air-relative direction.
	dragMag := 0.5 * dragCoefficient * rho * ballArea * speed * speed / ballMass
	acc = acc.Add(rel.Scale(-dragMag / speed))

	// Magnus: magnitude proportional to spin rate x speed x rho x A.
	k := 0.5 * rho * ballArea * ballRadius / ballMass
	acc.Z += k * sp.backspin * speed
	acc.X += k * sp.sidespin * speed

	return acc
}

// haltFunc reports whether stepping should stop at the given sample. The
// halting sample itself is recorded as the landing/crossing point.
type haltFunc func(Sample) bool

// integrate runs fixed-timestep explicit stepping from the initial sample
// until halt fires or maxTime is reached. Every sample is recorded for
// later playback.
func integrate(initial Sample, sp spin, rho, gravity float64, wind Vec3, dt, maxTime float64, halt haltFunc) *Trajectory {
	tr := &Trajectory{
		Samples:    []Sample{initial},
		PeakHeight: initial.Position.Z,
	}

	cur := initial
	for cur.T < maxTime {
		acc := accelerate(cur.Velocity, sp, rho, gravity, wind)
		next := Sample{
			T:        cur.T + dt,
			Velocity: cur.Velocity.Add(acc.Scale(dt)),
		}
		next.Position = cur.Position.Add(cur.Velocity.Scale(dt))

		tr.Samples = append(tr.Samples, next)
		if next.Position.Z > tr.PeakHeight {
			tr.PeakHeight = next.Position.Z
		}

		if halt(next) {
			landing := next.Position
			tr.Landing = &landing
			tr.HangTime = next.T
			tr.Distance = math.Hypot(landing.X, landing.Y)
			return tr
		}
		cur = next
	}

	// Ceiling hit: no landing point.
	tr.HangTime = cur.T
	return tr
}
