package feed

// WinProbDelta approximates the change in win likelihood attributable to one
// play. It is a placeholder, not a calibrated model: monotonic in the event
// magnitude and in leverage (which already encodes period, clock, and score
// closeness), amplified late in close games through the leverage term, and
// clamped to a sport-specific ceiling.
//
// magnitude is the 0-1 normalized significance of the play; cap is the
// sport's ceiling (e.g. 0.5).
func WinProbDelta(magnitude, leverage, cap float64) float64 {
	if magnitude < 0 {
		magnitude = 0
	} else if magnitude > 1 {
		magnitude = 1
	}
	delta := magnitude * 0.1 * (1 + leverage)
	if delta > cap {
		delta = cap
	}
	return delta
}

// Clamp bounds v to [0, max]. Leverage composites use it to enforce their
// sport-specific caps.
func Clamp(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
