// Package spatialmath defines the poses and orientation math used to describe an end-effector in Cartesian space.
package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a position in meters together with a unit quaternion orientation.
// A Pose is a value; none of the functions in this package mutate one in place.
type Pose struct {
	point       r3.Vector
	orientation quat.Number
}

// NewPose returns a pose at pt with orientation q. q is normalized; a quaternion that cannot be
// normalized returns ErrInvalidOrientation.
func NewPose(pt r3.Vector, q quat.Number) (Pose, error) {
	unit, err := NormalizeQuaternion(q)
	if err != nil {
		return Pose{}, err
	}
	return Pose{point: pt, orientation: unit}, nil
}

// NewPoseFromPoint returns a pose at pt with no rotation.
func NewPoseFromPoint(pt r3.Vector) Pose {
	return Pose{point: pt, orientation: NewZeroOrientation()}
}

// NewZeroPose returns a pose at the origin with no rotation.
func NewZeroPose() Pose {
	return NewPoseFromPoint(r3.Vector{})
}

// Point returns the position of the pose.
func (p Pose) Point() r3.Vector {
	return p.point
}

// Orientation returns the orientation quaternion of the pose. The zero Pose has a zero quaternion.
func (p Pose) Orientation() quat.Number {
	return p.orientation
}

func (p Pose) String() string {
	q := p.orientation
	return fmt.Sprintf("{X:%.6f Y:%.6f Z:%.6f W:%.6f I:%.6f J:%.6f K:%.6f}",
		p.point.X, p.point.Y, p.point.Z, q.Real, q.Imag, q.Jmag, q.Kmag)
}

// Compose returns the rigid transform a * b: b expressed in the frame of a.
func Compose(a, b Pose) Pose {
	q := quat.Mul(a.orientation, b.orientation)
	if unit, err := NormalizeQuaternion(q); err == nil {
		q = unit
	}
	return Pose{
		point:       a.point.Add(RotatePoint(a.orientation, b.point)),
		orientation: q,
	}
}

// Translate offsets the position of p by a world frame vector, leaving the orientation unchanged.
func Translate(p Pose, by r3.Vector) Pose {
	return Pose{point: p.point.Add(by), orientation: p.orientation}
}

// PoseAlmostEqual reports whether two poses have positions within tol of each other and describe
// the same rotation within tol.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	return R3VectorAlmostEqual(a.point, b.point, tol) && QuaternionAlmostEqual(a.orientation, b.orientation, tol)
}
