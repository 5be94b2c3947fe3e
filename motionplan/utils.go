// Package motionplan discretizes a straight Cartesian move between two poses into a trajectory of
// intermediate poses that can be streamed to a motion controller.
package motionplan

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/dvrk-tools/cartinterp/spatialmath"
)

// MaxPathSteps bounds the number of segments a single trajectory may contain.
const MaxPathSteps = 10_000_000

// Relative amount by which the distance/resolution ratio may exceed a whole number and still be
// rounded down to it, so that exact multiples of the resolution are not pushed up by float noise.
const stepCountTolerance = 1e-9

// PathStepCount will determine the number of segments which should be used to get from start to end so that no
// segment moves the position further than resolution. The returned value is guaranteed to be at least 1.
// Orientation does not contribute to the count.
// A distance that is a whole number of resolutions up to a relative 1e-9 is rounded down, so a segment may
// exceed resolution by at most that fraction.
func PathStepCount(start, end spatialmath.Pose, resolution float64) (int, error) {
	if math.IsNaN(resolution) || math.IsInf(resolution, 0) || resolution <= 0 {
		return 0, newInvalidArgumentError("resolution must be a positive finite distance, got %v", resolution)
	}
	if err := checkPoint("start", start.Point()); err != nil {
		return 0, err
	}
	if err := checkPoint("end", end.Point()); err != nil {
		return 0, err
	}

	ratio := start.Point().Distance(end.Point()) / resolution
	steps := math.Ceil(ratio - ratio*stepCountTolerance)
	if steps > MaxPathSteps {
		return 0, newInvalidArgumentError("resolution %v needs %.0f steps, more than the limit of %d", resolution, steps, MaxPathSteps)
	}
	if steps < 1 {
		return 1, nil
	}
	return int(steps), nil
}

func checkPoint(which string, pt r3.Vector) error {
	for _, v := range []float64{pt.X, pt.Y, pt.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return newInvalidArgumentError("%s position %v is not finite", which, pt)
		}
	}
	return nil
}

func checkPose(which string, p spatialmath.Pose) (spatialmath.Pose, error) {
	if err := checkPoint(which, p.Point()); err != nil {
		return spatialmath.Pose{}, err
	}
	normalized, err := spatialmath.NewPose(p.Point(), p.Orientation())
	if err != nil {
		return spatialmath.Pose{}, newInvalidArgumentError("%s orientation: %v", which, err)
	}
	return normalized, nil
}
