package motionplan

import (
	"github.com/dvrk-tools/cartinterp/spatialmath"
)

// Interpolate returns the straight-line trajectory from start to end, broken into the smallest number of
// segments for which no segment moves the position further than resolution. Positions are blended
// linearly and orientations with Slerp. The first pose is start and the last is end, with their
// orientations normalized.
func Interpolate(start, end spatialmath.Pose, resolution float64) (Trajectory, error) {
	steps, err := PathStepCount(start, end, resolution)
	if err != nil {
		return nil, err
	}
	return InterpolateSegments(start, end, steps)
}

// InterpolateSegments returns the straight-line trajectory from start to end divided into exactly segments
// equal steps, i.e. segments+1 poses.
func InterpolateSegments(start, end spatialmath.Pose, segments int) (Trajectory, error) {
	if segments <= 0 || segments > MaxPathSteps {
		return nil, newInvalidArgumentError("segment count must be in [1, %d], got %d", MaxPathSteps, segments)
	}
	start, err := checkPose("start", start)
	if err != nil {
		return nil, err
	}
	end, err = checkPose("end", end)
	if err != nil {
		return nil, err
	}

	from, to := start.Orientation(), end.Orientation()
	delta := end.Point().Sub(start.Point())

	traj := make(Trajectory, 0, segments+1)
	traj = append(traj, start)
	for i := 1; i < segments; i++ {
		t := float64(i) / float64(segments)
		pose, err := spatialmath.NewPose(start.Point().Add(delta.Mul(t)), spatialmath.Slerp(from, to, t))
		if err != nil {
			return nil, err
		}
		traj = append(traj, pose)
	}
	return append(traj, end), nil
}
