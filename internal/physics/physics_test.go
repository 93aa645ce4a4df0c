package physics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahump20/blaze-live/internal/model"
	"github.com/ahump20/blaze-live/internal/physics"
)

func reconstruct(t *testing.T, bb physics.BattedBall, params physics.Params) *physics.Trajectory {
	t.Helper()
	tr := physics.ReconstructBattedBall(bb, params)
	require.NotNil(t, tr)
	require.NotNil(t, tr.Landing, "ball should land inside the time ceiling")
	return tr
}

func TestBattedBallDistanceGrowsWithExitVelocity(t *testing.T) {
	params := physics.DefaultParams()
	prev := 0.0
	for _, ev := range []float64{85, 95, 105, 115} {
		tr := reconstruct(t, physics.BattedBall{ExitVelocity: ev, LaunchAngle: 28}, params)
		assert.Greater(t, tr.Distance, prev, "exit velocity %v", ev)
		prev = tr.Distance
	}
}

func TestBattedBallHangTimeGrowsWithLaunchAngle(t *testing.T) {
	params := physics.DefaultParams()
	prev := 0.0
	for _, la := range []float64{10, 20, 30, 45} {
		tr := reconstruct(t, physics.BattedBall{ExitVelocity: 95, LaunchAngle: la}, params)
		assert.Greater(t, tr.HangTime, prev, "launch angle %v", la)
		prev = tr.HangTime
	}
}

func TestBattedBallBackspinExtendsFlight(t *testing.T) {
	params := physics.DefaultParams()
	flat := reconstruct(t, physics.BattedBall{ExitVelocity: 100, LaunchAngle: 28}, params)
	lifted := reconstruct(t, physics.BattedBall{ExitVelocity: 100, LaunchAngle: 28, SpinRate: 1800}, params)

	assert.Greater(t, lifted.HangTime, flat.HangTime)
	assert.Greater(t, lifted.Distance, flat.Distance)
}

func TestBattedBallThinAirCarriesFarther(t *testing.T) {
	seaLevel := physics.DefaultParams()
	denver := physics.DefaultParams()
	denver.Elevation = 5280

	bb := physics.BattedBall{ExitVelocity: 103, LaunchAngle: 27, SpinRate: 1800}
	assert.Greater(t,
		reconstruct(t, bb, denver).Distance,
		reconstruct(t, bb, seaLevel).Distance)
}

func TestBattedBallWindCarries(t *testing.T) {
	out := physics.DefaultParams()
	out.Wind = physics.Wind{Speed: 15, Direction: 0}
	in := physics.DefaultParams()
	in.Wind = physics.Wind{Speed: 15, Direction: 180}

	bb := physics.BattedBall{ExitVelocity: 100, LaunchAngle: 30}
	assert.Greater(t,
		reconstruct(t, bb, out).Distance,
		reconstruct(t, bb, in).Distance)
}

func TestBattedBallSprayAngleBendsFlight(t *testing.T) {
	params := physics.DefaultParams()
	pulled := reconstruct(t, physics.BattedBall{ExitVelocity: 100, LaunchAngle: 28, SprayAngle: -30}, params)
	assert.Negative(t, pulled.Landing.X)
	assert.Positive(t, pulled.Landing.Y)
}

func TestBattedBallZeroVelocityIsFinite(t *testing.T) {
	tr := physics.ReconstructBattedBall(physics.BattedBall{}, physics.DefaultParams())
	require.NotNil(t, tr.Landing)
	assert.False(t, math.IsNaN(tr.Distance))
	assert.InDelta(t, 0, tr.Distance, 1e-9)
	assert.Less(t, tr.HangTime, 1.0) // dropped from contact height
}

func TestFenceClearance(t *testing.T) {
	params := physics.DefaultParams()
	params.Fence = []physics.FenceSegment{{Angle: 0, Distance: 300, Height: 8}}

	crushed := reconstruct(t, physics.BattedBall{ExitVelocity: 110, LaunchAngle: 28, SpinRate: 1800}, params)
	res, err := physics.FenceClearance(crushed, params)
	require.NoError(t, err)
	assert.True(t, res.Clears)
	assert.Positive(t, res.Margin)
	assert.Equal(t, 300.0, res.Segment.Distance)

	// Weak contact lands well short of the wall.
	popped := reconstruct(t, physics.BattedBall{ExitVelocity: 70, LaunchAngle: 35}, params)
	res, err = physics.FenceClearance(popped, params)
	require.NoError(t, err)
	assert.False(t, res.Clears)
	assert.Equal(t, -8.0, res.Margin)

	// Clearing and the margin sign always agree: meeting the wall exactly
	// stays in play.
	assert.Equal(t, res.Clears, res.Margin > 0)
}

func TestFenceClearanceExactWallHeightStaysInPlay(t *testing.T) {
	params := physics.DefaultParams()
	params.Fence = []physics.FenceSegment{{Angle: 0, Distance: 300, Height: 8}}

	// Samples bracket the wall distance so the interpolated height at
	// 300ft is exactly the wall height: clearing requires strictly more.
	tr := &physics.Trajectory{
		Samples: []physics.Sample{
			{T: 0, Position: physics.Vec3{Y: 0, Z: 3}},
			{T: 2, Position: physics.Vec3{Y: 290, Z: 9}},
			{T: 2.2, Position: physics.Vec3{Y: 310, Z: 7}},
		},
	}

	res, err := physics.FenceClearance(tr, params)
	require.NoError(t, err)
	assert.False(t, res.Clears)
	assert.Zero(t, res.Margin)
}

func TestFenceClearancePicksNearestSegment(t *testing.T) {
	params := physics.DefaultParams() // segments at -45, -22.5, 0, 22.5, 45

	center := reconstruct(t, physics.BattedBall{ExitVelocity: 105, LaunchAngle: 28, SpinRate: 1800}, params)
	res, err := physics.FenceClearance(center, params)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Segment.Angle)

	line := reconstruct(t, physics.BattedBall{ExitVelocity: 105, LaunchAngle: 28, SprayAngle: 40, SpinRate: 1800}, params)
	res, err = physics.FenceClearance(line, params)
	require.NoError(t, err)
	assert.Equal(t, 45.0, res.Segment.Angle)
}

func TestFenceClearanceRejectsEmptyGeometry(t *testing.T) {
	params := physics.DefaultParams()
	tr := reconstruct(t, physics.BattedBall{ExitVelocity: 100, LaunchAngle: 28}, params)

	params.Fence = nil
	_, err := physics.FenceClearance(tr, params)
	assert.Error(t, err)
}

func TestCatchProbability(t *testing.T) {
	params := physics.DefaultParams()
	tr := reconstruct(t, physics.BattedBall{ExitVelocity: 98, LaunchAngle: 38}, params)

	// Fielder standing at the landing point makes the play.
	res, err := physics.CatchProbability(tr, *tr.Landing, 27)
	require.NoError(t, err)
	assert.Greater(t, res.Probability, 0.95)
	assert.Equal(t, 1.0, res.RouteEfficiency)

	// A fielder 200 feet away has no chance.
	far := physics.Vec3{X: tr.Landing.X + 200, Y: tr.Landing.Y}
	res, err = physics.CatchProbability(tr, far, 27)
	require.NoError(t, err)
	assert.Less(t, res.Probability, 0.05)

	// The logistic midpoint sits exactly half a second of margin out.
	speed := 27.0
	run := (tr.HangTime - 0.5) * speed
	start := physics.Vec3{X: tr.Landing.X + run, Y: tr.Landing.Y}
	res, err = physics.CatchProbability(tr, start, speed)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.Probability, 1e-9)
	assert.InDelta(t, 0.5, res.TimeMargin, 1e-9)

	_, err = physics.CatchProbability(tr, *tr.Landing, 0)
	assert.Error(t, err)
}

func TestReconstructPitch(t *testing.T) {
	params := physics.DefaultParams()
	tr := physics.ReconstructPitch(physics.Pitch{Velocity: 95, SpinRate: 2400}, params)
	require.NotNil(t, tr.Landing)

	// Crosses the plate in well under a second, below the release height
	// but above the dirt.
	assert.Less(t, tr.HangTime, 1.0)
	assert.Greater(t, tr.HangTime, 0.3)
	assert.LessOrEqual(t, tr.Landing.Y, 0.0)
	assert.Greater(t, tr.Landing.Z, 0.0)
	assert.Less(t, tr.Landing.Z, 5.8)

	// Backspin fights gravity: the spinning pitch crosses higher than the
	// same pitch with no spin.
	dead := physics.ReconstructPitch(physics.Pitch{Velocity: 95}, params)
	require.NotNil(t, dead.Landing)
	assert.Greater(t, tr.Landing.Z, dead.Landing.Z)
}

func TestReconstructPitchCustomRelease(t *testing.T) {
	params := physics.DefaultParams()
	tr := physics.ReconstructPitch(physics.Pitch{
		Velocity:     88,
		ReleasePoint: [3]float64{-2, 53, 6.2},
	}, params)
	require.NotNil(t, tr.Landing)
	assert.InDelta(t, -2, tr.Samples[0].Position.X, 1e-9)
	assert.InDelta(t, 6.2, tr.Samples[0].Position.Z, 1e-9)
}

func TestFromLaunchParameters(t *testing.T) {
	params := physics.DefaultParams()

	tr, err := physics.FromLaunchParameters(model.LaunchParameters{
		ExitVelocity: 104, LaunchAngle: 26, WindSpeed: 10, WindDirection: 0, Temperature: 85,
	}, params)
	require.NoError(t, err)
	assert.NotNil(t, tr.Landing)

	tr, err = physics.FromLaunchParameters(model.LaunchParameters{
		ReleaseVelocity: 97, SpinRate: 2300,
	}, params)
	require.NoError(t, err)
	assert.NotNil(t, tr.Landing)

	_, err = physics.FromLaunchParameters(model.LaunchParameters{}, params)
	assert.Error(t, err)
}
