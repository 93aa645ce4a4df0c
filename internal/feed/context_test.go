package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinProbDelta(t *testing.T) {
	// Monotonic in magnitude at fixed leverage.
	assert.Greater(t,
		WinProbDelta(0.9, 2.0, 0.5),
		WinProbDelta(0.4, 2.0, 0.5))

	// Monotonic in leverage at fixed magnitude.
	assert.Greater(t,
		WinProbDelta(0.5, 4.0, 0.5),
		WinProbDelta(0.5, 1.0, 0.5))

	// Never exceeds the sport cap, even at extreme leverage.
	assert.Equal(t, 0.5, WinProbDelta(1.0, 10.0, 0.5))

	// Out-of-range magnitude is clamped, not propagated.
	assert.Equal(t, WinProbDelta(1.0, 2.0, 0.5), WinProbDelta(3.0, 2.0, 0.5))
	assert.Zero(t, WinProbDelta(-1.0, 2.0, 0.5))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-0.3, 4))
	assert.Equal(t, 2.5, Clamp(2.5, 4))
	assert.Equal(t, 4.0, Clamp(9.1, 4))
}
