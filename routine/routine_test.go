package routine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/dvrk-tools/cartinterp/components/arm/fake"
	fakegripper "github.com/dvrk-tools/cartinterp/components/gripper/fake"
	"github.com/dvrk-tools/cartinterp/config"
	"github.com/dvrk-tools/cartinterp/logging"
	"github.com/dvrk-tools/cartinterp/spatialmath"
)

var startPose = spatialmath.NewPoseFromPoint(r3.Vector{X: 0.05, Z: -0.1})

func fastConfig() *config.Config {
	conf := config.Default()
	conf.LinearSpeed = 100
	conf.SegmentPacing = 0
	conf.Settle = 0
	conf.GripperPause = 0
	return conf
}

func TestRun(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	a := fake.NewArm("PSM1", startPose, logger)
	a.MaxStep = 0.0003
	g := fakegripper.NewGripper("jaw")

	r, err := New(fastConfig(), a, g, nil, logger)
	test.That(t, err, test.ShouldBeNil)
	res, err := r.Run(context.Background())
	test.That(t, err, test.ShouldBeNil)

	test.That(t, g.History(), test.ShouldResemble, []float64{config.DefaultGripperOpenDegrees, 0})

	test.That(t, res.Start, test.ShouldResemble, startPose)
	test.That(t, res.End.Point(), test.ShouldResemble, r3.Vector{X: 0.05, Y: -0.03, Z: -0.1})
	rotated := spatialmath.NewTaitBryanQuaternion(30, -60, 30)
	test.That(t, spatialmath.QuaternionAlmostEqual(res.End.Orientation(), rotated, 1e-12), test.ShouldBeTrue)

	// no separate move to the start pose: the arm is already there
	test.That(t, len(res.Moves), test.ShouldEqual, 4)
	for i, want := range []struct {
		strategy Strategy
		segments int
	}{
		{StrategyLinear, 300},
		{StrategyLinear, 300},
		{StrategySegmented, 100},
		{StrategySegmented, 100},
	} {
		test.That(t, res.Moves[i].Strategy, test.ShouldEqual, want.strategy)
		test.That(t, res.Moves[i].Segments, test.ShouldEqual, want.segments)
		test.That(t, res.Moves[i].Distance, test.ShouldAlmostEqual, 0.03)
		test.That(t, res.Moves[i].Rotation, test.ShouldAlmostEqual,
			spatialmath.QuaternionAngle(startPose.Orientation(), rotated), 1e-9)
	}

	summary := res.String()
	test.That(t, summary, test.ShouldContainSubstring, "Strategy")
	test.That(t, summary, test.ShouldContainSubstring, "segmented")
	test.That(t, summary, test.ShouldContainSubstring, "30.000")

	positions := a.Positions()
	test.That(t, len(positions), test.ShouldEqual, 301+301+101+101)
	test.That(t, spatialmath.PoseAlmostEqual(positions[300], res.End, 1e-12), test.ShouldBeTrue)
	test.That(t, spatialmath.PoseAlmostEqual(positions[len(positions)-1], startPose, 1e-12), test.ShouldBeTrue)
	test.That(t, a.StopCount(), test.ShouldEqual, 0)

	test.That(t, logs.FilterMessage("starting cartesian moves").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("cartesian moves done").Len(), test.ShouldEqual, 1)
}

func TestRunWaitsOnClock(t *testing.T) {
	logger := logging.NewTestLogger(t)
	a := fake.NewArm("PSM1", startPose, logger)
	g := fakegripper.NewGripper("jaw")
	mock := clock.NewMock()
	began := mock.Now()

	r, err := New(config.Default(), a, g, mock, logger)
	test.That(t, err, test.ShouldBeNil)

	done := make(chan error, 1)
	go func() {
		_, err := r.Run(context.Background())
		done <- err
	}()
	var runErr error
	for waiting := true; waiting; {
		select {
		case runErr = <-done:
			waiting = false
		default:
			mock.Add(10 * time.Millisecond)
		}
	}
	test.That(t, runErr, test.ShouldBeNil)
	test.That(t, len(a.Positions()), test.ShouldEqual, 301+301+101+101)

	// the gripper pause and the four settles alone
	minimum := config.DefaultGripperPause + 4*config.DefaultSettle
	test.That(t, mock.Since(began) >= minimum, test.ShouldBeTrue)
}

func TestRunCancelled(t *testing.T) {
	logger := logging.NewTestLogger(t)
	a := fake.NewArm("PSM1", startPose, logger)
	g := fakegripper.NewGripper("jaw")
	conf := config.Default()
	conf.GripperPause = 0

	// the mock never advances, so the first paced step blocks until cancellation
	r, err := New(conf, a, g, clock.NewMock(), logger)
	test.That(t, err, test.ShouldBeNil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := r.Run(ctx)
		done <- err
	}()
	cancel()
	err = <-done
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
	test.That(t, len(a.Positions()), test.ShouldBeLessThanOrEqualTo, 1)
}

func TestRunGripperFailure(t *testing.T) {
	logger := logging.NewTestLogger(t)
	a := fake.NewArm("PSM1", startPose, logger)
	conf := fastConfig()
	conf.GripperOpenDegrees = fakegripper.MaxAngle + 10

	r, err := New(conf, a, fakegripper.NewGripper("jaw"), nil, logger)
	test.That(t, err, test.ShouldBeNil)
	_, err = r.Run(context.Background())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "outside")
	test.That(t, a.Positions(), test.ShouldBeEmpty)
}

func TestRunArmFailure(t *testing.T) {
	logger := logging.NewTestLogger(t)
	a := fake.NewArm("PSM1", startPose, logger)
	a.MaxStep = 0.0001

	// segmented steps of 0.3mm are too large for this arm
	r, err := New(fastConfig(), a, fakegripper.NewGripper("jaw"), nil, logger)
	test.That(t, err, test.ShouldBeNil)
	res, err := r.Run(context.Background())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "segmented move")
	test.That(t, err.Error(), test.ShouldContainSubstring, "exceeds")
	test.That(t, len(res.Moves), test.ShouldEqual, 2)
	test.That(t, a.StopCount(), test.ShouldEqual, 1)
}

func TestNew(t *testing.T) {
	logger := logging.NewTestLogger(t)
	a := fake.NewArm("PSM1", startPose, logger)
	g := fakegripper.NewGripper("jaw")

	_, err := New(nil, a, g, nil, logger)
	test.That(t, err, test.ShouldNotBeNil)

	bad := config.Default()
	bad.Segments = 0
	_, err = New(bad, a, g, nil, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "segments")

	_, err = New(config.Default(), nil, g, nil, logger)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = New(config.Default(), a, nil, nil, logger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestGoal(t *testing.T) {
	conf := config.Default()
	conf.OffsetM = [3]float64{0.01, 0, 0}
	conf.RotationTBDegrees = [3]float64{90, 0, 0}
	r, err := New(conf, fake.NewArm("PSM1", startPose, logging.NewTestLogger(t)), fakegripper.NewGripper("jaw"), nil,
		logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	start, err := spatialmath.NewPose(r3.Vector{X: 1}, spatialmath.NewTaitBryanQuaternion(90, 0, 0))
	test.That(t, err, test.ShouldBeNil)
	goal, err := r.Goal(start)
	test.That(t, err, test.ShouldBeNil)
	// the offset is in the world frame, the rotation in the goal's own frame
	test.That(t, spatialmath.R3VectorAlmostEqual(goal.Point(), r3.Vector{X: 1.01}, 1e-12), test.ShouldBeTrue)
	want := spatialmath.NewTaitBryanQuaternion(180, 0, 0)
	test.That(t, spatialmath.QuaternionAlmostEqual(goal.Orientation(), want, 1e-12), test.ShouldBeTrue)
}
