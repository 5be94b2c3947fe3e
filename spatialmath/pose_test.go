package spatialmath

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestNewPose(t *testing.T) {
	p, err := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, quat.Number{Real: 0, Kmag: 4})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Point(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, p.Orientation(), test.ShouldResemble, quat.Number{Kmag: 1})

	_, err = NewPose(r3.Vector{}, quat.Number{})
	test.That(t, errors.Is(err, ErrInvalidOrientation), test.ShouldBeTrue)

	test.That(t, NewZeroPose().Orientation(), test.ShouldResemble, NewZeroOrientation())
	test.That(t, NewPoseFromPoint(r3.Vector{Y: -1}).Point(), test.ShouldResemble, r3.Vector{Y: -1})
}

func TestCompose(t *testing.T) {
	quarterTurnZ := R4AA{Theta: math.Pi / 2, RZ: 1}.ToQuat()
	a, err := NewPose(r3.Vector{X: 1}, quarterTurnZ)
	test.That(t, err, test.ShouldBeNil)
	b := NewPoseFromPoint(r3.Vector{X: 1})

	// b's offset along x lands on a's rotated x axis, which is world +y
	c := Compose(a, b)
	test.That(t, R3VectorAlmostEqual(c.Point(), r3.Vector{X: 1, Y: 1}, 1e-12), test.ShouldBeTrue)
	test.That(t, QuaternionAlmostEqual(c.Orientation(), quarterTurnZ, 1e-12), test.ShouldBeTrue)

	// a pure rotation composed on the right keeps the position
	rot, err := NewPose(r3.Vector{}, NewTaitBryanQuaternion(30, -60, 30))
	test.That(t, err, test.ShouldBeNil)
	d := Compose(a, rot)
	test.That(t, R3VectorAlmostEqual(d.Point(), a.Point(), 1e-12), test.ShouldBeTrue)
	test.That(t, quat.Abs(d.Orientation()), test.ShouldAlmostEqual, 1.)

	test.That(t, PoseAlmostEqual(Compose(NewZeroPose(), a), a, 1e-12), test.ShouldBeTrue)
}

func TestTranslate(t *testing.T) {
	a, err := NewPose(r3.Vector{X: 0.1, Y: 0.2}, q45x)
	test.That(t, err, test.ShouldBeNil)
	moved := Translate(a, r3.Vector{Y: -0.03})
	test.That(t, moved.Point().Y, test.ShouldAlmostEqual, 0.17)
	test.That(t, moved.Orientation(), test.ShouldResemble, a.Orientation())
	// a is untouched
	test.That(t, a.Point().Y, test.ShouldAlmostEqual, 0.2)
}

func TestPoseAlmostEqual(t *testing.T) {
	a, err := NewPose(r3.Vector{X: 1}, q45x)
	test.That(t, err, test.ShouldBeNil)
	b, err := NewPose(r3.Vector{X: 1 + 1e-12}, Flip(q45x))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, PoseAlmostEqual(a, b, 1e-9), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(a, Translate(b, r3.Vector{Z: 1e-3}), 1e-9), test.ShouldBeFalse)
}
