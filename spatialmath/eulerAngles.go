package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"
)

// NewTaitBryanQuaternion returns the rotation of yaw about Z, then pitch about the new Y, then roll
// about the new X. Angles are in degrees.
func NewTaitBryanQuaternion(yaw, pitch, roll float64) quat.Number {
	q := mgl64.AnglesToQuat(DegToRad(yaw), DegToRad(pitch), DegToRad(roll), mgl64.ZYX)
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}
