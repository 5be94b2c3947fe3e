package arm

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/dvrk-tools/cartinterp/logging"
	"github.com/dvrk-tools/cartinterp/motionplan"
	"github.com/dvrk-tools/cartinterp/spatialmath"
)

// MoveThroughTrajectory sends every pose of traj to the arm in order. The first pose is sent immediately and
// each following pose one pacing interval after the previous one; a pacing of zero sends them back to back.
// If the context is cancelled or a pose is rejected the arm is stopped and the combined error is returned.
func MoveThroughTrajectory(
	ctx context.Context,
	a Arm,
	traj motionplan.Trajectory,
	pacing time.Duration,
	clk clock.Clock,
) error {
	if len(traj) == 0 {
		return errors.New("cannot move through an empty trajectory")
	}
	if pacing < 0 {
		return errors.Errorf("pacing must not be negative, got %v", pacing)
	}

	var tick <-chan time.Time
	if pacing > 0 && len(traj) > 1 {
		ticker := clk.Ticker(pacing)
		defer ticker.Stop()
		tick = ticker.C
	}

	for i, pose := range traj {
		if i > 0 && tick != nil {
			if !utils.SelectContextOrWaitChan(ctx, tick) {
				return stopAfter(ctx, a, ctx.Err())
			}
		} else if err := ctx.Err(); err != nil {
			return stopAfter(ctx, a, err)
		}
		if err := a.MoveToPosition(ctx, pose); err != nil {
			return stopAfter(ctx, a, errors.Wrapf(err, "arm %q rejected step %d of %d", a.Name(), i, traj.Segments()))
		}
	}
	return nil
}

// MoveLinear moves the arm from where it currently is to goal in a straight line, sending a pose every
// resolution meters so that the end-effector travels at speed meters per second.
func MoveLinear(
	ctx context.Context,
	a Arm,
	goal spatialmath.Pose,
	resolution, speed float64,
	clk clock.Clock,
	logger logging.Logger,
) (motionplan.Trajectory, error) {
	start, err := a.EndPosition(ctx)
	if err != nil {
		return nil, err
	}
	traj, err := motionplan.Interpolate(start, goal, resolution)
	if err != nil {
		return nil, err
	}
	pacing, err := traj.StepPacing(speed)
	if err != nil {
		return nil, err
	}
	logger.Debugw("moving linearly", "arm", a.Name(), "segments", traj.Segments(), "pacing", pacing,
		"distance", traj.PathLength())
	return traj, MoveThroughTrajectory(ctx, a, traj, pacing, clk)
}

// MoveSegmented moves the arm from where it currently is to goal in exactly segments equal steps, one every
// pacing interval.
func MoveSegmented(
	ctx context.Context,
	a Arm,
	goal spatialmath.Pose,
	segments int,
	pacing time.Duration,
	clk clock.Clock,
	logger logging.Logger,
) (motionplan.Trajectory, error) {
	start, err := a.EndPosition(ctx)
	if err != nil {
		return nil, err
	}
	traj, err := motionplan.InterpolateSegments(start, goal, segments)
	if err != nil {
		return nil, err
	}
	logger.Debugw("moving in fixed segments", "arm", a.Name(), "segments", segments, "pacing", pacing)
	return traj, MoveThroughTrajectory(ctx, a, traj, pacing, clk)
}

func stopAfter(ctx context.Context, a Arm, err error) error {
	return multierr.Combine(err, a.Stop(context.WithoutCancel(ctx)))
}
