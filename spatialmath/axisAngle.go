package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// See here for a thorough explanation: https://en.wikipedia.org/wiki/Axis%E2%80%93angle_representation
// An orientation is expressed by an axis through the origin, (rx, ry, rz), and a rotation around that axis, theta.

// R4AA represents an R4 axis angle.
type R4AA struct {
	Theta float64 `json:"th"`
	RX    float64 `json:"x"`
	RY    float64 `json:"y"`
	RZ    float64 `json:"z"`
}

// NewR4AA creates a zero rotation about +Z.
func NewR4AA() *R4AA {
	return &R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1}
}

// ToQuat converts an R4 axis angle to a unit quaternion. An axis of zero length yields no rotation.
// See: https://www.euclideanspace.com/maths/geometry/rotations/conversions/angleToQuaternion/index.htm
func (r4 R4AA) ToQuat() quat.Number {
	norm := math.Sqrt(r4.RX*r4.RX + r4.RY*r4.RY + r4.RZ*r4.RZ)
	if norm == 0 {
		return NewZeroOrientation()
	}
	sinA := math.Sin(r4.Theta/2) / norm
	return quat.Number{
		Real: math.Cos(r4.Theta / 2),
		Imag: r4.RX * sinA,
		Jmag: r4.RY * sinA,
		Kmag: r4.RZ * sinA,
	}
}

// QuatToR4AA converts a quat to an R4 axis angle in the same way the C++ Eigen library does.
// https://eigen.tuxfamily.org/dox/AngleAxis_8h_source.html
func QuatToR4AA(q quat.Number) R4AA {
	denom := Norm(q)

	angle := 2 * math.Atan2(denom, math.Abs(q.Real))
	if q.Real < 0 {
		angle *= -1
	}

	if denom < 1e-6 {
		return R4AA{angle, 0, 0, 1}
	}
	return R4AA{angle, q.Imag / denom, q.Jmag / denom, q.Kmag / denom}
}
