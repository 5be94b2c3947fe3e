package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// When the cosine of the angle between two orientations exceeds this value they are treated as
// parallel and Slerp falls back to a normalized linear blend.
const slerpLinearThreshold = 0.9995

// How far from 1 the norm of a normalized quaternion may land.
const unitNormTolerance = 1e-9

// ErrInvalidOrientation is returned when a quaternion cannot be normalized into a rotation.
var ErrInvalidOrientation = errors.New("orientation quaternion cannot be normalized")

// NewZeroOrientation returns the quaternion which signifies no rotation.
func NewZeroOrientation() quat.Number {
	return quat.Number{Real: 1}
}

// NormalizeQuaternion scales q to unit length. A zero or non-finite quaternion is rejected, as is one
// so close to zero that it cannot be scaled to unit length in float64.
func NormalizeQuaternion(q quat.Number) (quat.Number, error) {
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return quat.Number{}, errors.Wrapf(ErrInvalidOrientation, "norm is %v", n)
	}
	unit := quat.Scale(1/n, q)
	if un := quat.Abs(unit); math.IsNaN(un) || math.Abs(un-1) > unitNormTolerance {
		return quat.Number{}, errors.Wrapf(ErrInvalidOrientation, "norm %v is too small to normalize", n)
	}
	return unit, nil
}

// Dot returns the 4D dot product of two quaternions.
func Dot(q1, q2 quat.Number) float64 {
	return q1.Real*q2.Real + q1.Imag*q2.Imag + q1.Jmag*q2.Jmag + q1.Kmag*q2.Kmag
}

// Norm returns the norm of the quaternion, i.e. the sqrt of the squares of the imaginary parts.
func Norm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// Slerp performs spherical linear interpolation between two unit quaternions at parameter t in [0, 1].
// The shorter of the two arcs is always taken, and the result is renormalized.
func Slerp(q0, q1 quat.Number, t float64) quat.Number {
	dot := Dot(q0, q1)
	if dot < 0 {
		q1 = Flip(q1)
		dot = -dot
	}

	var out quat.Number
	if dot > slerpLinearThreshold {
		out = quat.Add(q0, quat.Scale(t, quat.Sub(q1, q0)))
	} else {
		theta0 := math.Acos(math.Min(dot, 1))
		theta := theta0 * t
		sinTheta0 := math.Sin(theta0)
		s0 := math.Cos(theta) - dot*math.Sin(theta)/sinTheta0
		s1 := math.Sin(theta) / sinTheta0
		out = quat.Add(quat.Scale(s0, q0), quat.Scale(s1, q1))
	}
	return quat.Scale(1/quat.Abs(out), out)
}

// QuaternionAngle returns the angle in radians of the shortest rotation taking q1 to q2. The result is in [0, pi].
func QuaternionAngle(q1, q2 quat.Number) float64 {
	between := quat.Mul(quat.Conj(q1), q2)
	return 2 * math.Atan2(Norm(between), math.Abs(between.Real))
}

// QuaternionAlmostEqual reports whether two quaternions describe the same rotation within tol.
// q and -q are considered equal.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	if Dot(a, b) < 0 {
		b = Flip(b)
	}
	return Float64AlmostEqual(a.Real, b.Real, tol) &&
		Float64AlmostEqual(a.Imag, b.Imag, tol) &&
		Float64AlmostEqual(a.Jmag, b.Jmag, tol) &&
		Float64AlmostEqual(a.Kmag, b.Kmag, tol)
}

// RotatePoint rotates v by the unit quaternion q.
func RotatePoint(q quat.Number, v r3.Vector) r3.Vector {
	rotated := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}
