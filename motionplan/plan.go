package motionplan

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/golang/geo/r3"
	"github.com/samber/lo"

	"github.com/dvrk-tools/cartinterp/spatialmath"
)

// Trajectory is an ordered sequence of poses. Consecutive poses are one segment apart.
type Trajectory []spatialmath.Pose

// Start returns the first pose, or the zero Pose for an empty trajectory.
func (tr Trajectory) Start() spatialmath.Pose {
	if len(tr) == 0 {
		return spatialmath.Pose{}
	}
	return tr[0]
}

// End returns the last pose, or the zero Pose for an empty trajectory.
func (tr Trajectory) End() spatialmath.Pose {
	if len(tr) == 0 {
		return spatialmath.Pose{}
	}
	return tr[len(tr)-1]
}

// Segments returns the number of steps between consecutive poses.
func (tr Trajectory) Segments() int {
	if len(tr) == 0 {
		return 0
	}
	return len(tr) - 1
}

// Points returns just the positions of the trajectory.
func (tr Trajectory) Points() []r3.Vector {
	return lo.Map(tr, func(p spatialmath.Pose, _ int) r3.Vector {
		return p.Point()
	})
}

// PathLength returns the total distance travelled by the position.
func (tr Trajectory) PathLength() float64 {
	var total float64
	for i := 1; i < len(tr); i++ {
		total += tr[i-1].Point().Distance(tr[i].Point())
	}
	return total
}

// MaxStep returns the largest distance moved by the position in one segment.
func (tr Trajectory) MaxStep() float64 {
	var largest float64
	for i := 1; i < len(tr); i++ {
		largest = math.Max(largest, tr[i-1].Point().Distance(tr[i].Point()))
	}
	return largest
}

// AngularPathLength returns the total rotation in radians swept by the orientation.
func (tr Trajectory) AngularPathLength() float64 {
	var total float64
	for i := 1; i < len(tr); i++ {
		total += spatialmath.QuaternionAngle(tr[i-1].Orientation(), tr[i].Orientation())
	}
	return total
}

// StepPacing returns how long each segment should take for the position to travel at speed, in meters
// per second. A trajectory that does not move the position has zero pacing.
func (tr Trajectory) StepPacing(speed float64) (time.Duration, error) {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed <= 0 {
		return 0, newInvalidArgumentError("speed must be a positive finite value, got %v", speed)
	}
	if tr.Segments() == 0 {
		return 0, nil
	}
	perSegment := tr.PathLength() / float64(tr.Segments())
	return time.Duration(math.Round(perSegment / speed * float64(time.Second))), nil
}

// String returns a human-readable version of the Trajectory, suitable for debugging.
func (tr Trajectory) String() string {
	var str strings.Builder
	for i, p := range tr {
		fmt.Fprintf(&str, "\n%d: %v", i, p)
	}
	return str.String()
}
