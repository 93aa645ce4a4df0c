package physics

import (
	"fmt"

	"github.com/ahump20/blaze-live/internal/model"
)

// FromLaunchParameters reconstructs the flight recorded on a persisted
// event. The embedded field set decides the path: batted-ball fields take
// precedence, pitch fields otherwise. Environment fields on the parameters
// override the matching fields of params.
func FromLaunchParameters(lp model.LaunchParameters, params Params) (*Trajectory, error) {
	if lp.Temperature != 0 {
		params.Temperature = lp.Temperature
	}

	switch {
	case lp.ExitVelocity > 0:
		if lp.WindSpeed != 0 {
			params.Wind = Wind{Speed: lp.WindSpeed, Direction: lp.WindDirection}
		}
		return ReconstructBattedBall(BattedBall{
			ExitVelocity: lp.ExitVelocity,
			LaunchAngle:  lp.LaunchAngle,
			SprayAngle:   lp.SprayAngle,
		}, params), nil

	case lp.ReleaseVelocity > 0:
		return ReconstructPitch(Pitch{
			Velocity:     lp.ReleaseVelocity,
			SpinRate:     lp.SpinRate,
			SpinAxis:     lp.SpinAxis,
			ReleasePoint: lp.ReleasePoint,
		}, params), nil
	}
	return nil, fmt.Errorf("launch parameters carry neither batted-ball nor pitch data")
}
