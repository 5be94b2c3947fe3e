// Package routine runs the scripted Cartesian demonstration: it exercises the gripper, then moves the arm to an
// offset and rotated goal and back again, first with a resolution based linear move and then with a fixed
// number of segments.
package routine

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/dvrk-tools/cartinterp/components/arm"
	"github.com/dvrk-tools/cartinterp/components/gripper"
	"github.com/dvrk-tools/cartinterp/config"
	"github.com/dvrk-tools/cartinterp/logging"
	"github.com/dvrk-tools/cartinterp/motionplan"
	"github.com/dvrk-tools/cartinterp/spatialmath"
)

// Strategy names how a move was generated.
type Strategy string

// The two ways a move can be generated.
const (
	StrategyLinear    Strategy = "linear"
	StrategySegmented Strategy = "segmented"
)

// Move summarizes one completed move.
type Move struct {
	Strategy Strategy
	Segments int
	// Distance is the path length of the position in meters.
	Distance float64
	// Rotation is the angle in radians swept by the orientation.
	Rotation float64
}

// Result is what a run did.
type Result struct {
	Start spatialmath.Pose
	End   spatialmath.Pose
	Moves []Move
}

// String prints out a table of each move, with columns of strategy, segments, distance and rotation.
func (res Result) String() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("start %v\nend   %v", res.Start, res.End))
	t.AppendHeader(table.Row{"#", "Strategy", "Segments", "Distance (mm)", "Rotation (deg)"})
	for i, m := range res.Moves {
		t.AppendRow(table.Row{
			i + 1,
			m.Strategy,
			m.Segments,
			fmt.Sprintf("%.3f", m.Distance*1000),
			fmt.Sprintf("%.2f", spatialmath.RadToDeg(m.Rotation)),
		})
	}
	return t.Render()
}

// Routine drives one arm and its gripper through the demonstration.
type Routine struct {
	conf    *config.Config
	arm     arm.Arm
	gripper gripper.Gripper
	clk     clock.Clock
	logger  logging.Logger
}

// New returns a routine for the given components. The config is validated first.
func New(
	conf *config.Config,
	a arm.Arm,
	g gripper.Gripper,
	clk clock.Clock,
	logger logging.Logger,
) (*Routine, error) {
	if conf == nil {
		return nil, errors.New("routine requires a config")
	}
	if err := conf.Validate("routine"); err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errors.New("routine requires an arm")
	}
	if g == nil {
		return nil, errors.New("routine requires a gripper")
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Routine{conf: conf, arm: a, gripper: g, clk: clk, logger: logger}, nil
}

// Goal returns the pose the routine moves to from start: start translated by the configured offset in the
// world frame, then rotated by the configured angles in its own frame.
func (r *Routine) Goal(start spatialmath.Pose) (spatialmath.Pose, error) {
	rot, err := spatialmath.NewPose(r3.Vector{}, r.conf.Rotation())
	if err != nil {
		return spatialmath.Pose{}, err
	}
	return spatialmath.Compose(spatialmath.Translate(start, r.conf.Offset()), rot), nil
}

// Run performs the whole demonstration. It returns early, with the arm stopped, if ctx is cancelled.
// Each strategy starts from wherever the previous move left the arm, which is the start pose, so no
// separate move to the start pose is issued and Result holds four moves.
func (r *Routine) Run(ctx context.Context) (Result, error) {
	var res Result
	if err := r.exerciseGripper(ctx); err != nil {
		return res, err
	}

	start, err := r.arm.EndPosition(ctx)
	if err != nil {
		return res, errors.Wrapf(err, "cannot read the position of arm %q", r.arm.Name())
	}
	end, err := r.Goal(start)
	if err != nil {
		return res, err
	}
	res.Start, res.End = start, end
	r.logger.Infow("starting cartesian moves", "arm", r.arm.Name(), "start", start.String(), "end", end.String())

	legs := []struct {
		strategy Strategy
		goal     spatialmath.Pose
	}{
		{StrategyLinear, end},
		{StrategyLinear, start},
		{StrategySegmented, end},
		{StrategySegmented, start},
	}
	for _, leg := range legs {
		traj, err := r.move(ctx, leg.strategy, leg.goal)
		if err != nil {
			return res, errors.Wrapf(err, "%s move to %v failed", leg.strategy, leg.goal)
		}
		res.Moves = append(res.Moves, Move{
			Strategy: leg.strategy,
			Segments: traj.Segments(),
			Distance: traj.PathLength(),
			Rotation: traj.AngularPathLength(),
		})
		if err := r.wait(ctx, r.conf.Settle); err != nil {
			return res, err
		}
	}
	r.logger.Infow("cartesian moves done", "arm", r.arm.Name(), "moves", len(res.Moves))
	return res, nil
}

func (r *Routine) move(ctx context.Context, strategy Strategy, goal spatialmath.Pose) (motionplan.Trajectory, error) {
	switch strategy {
	case StrategyLinear:
		return arm.MoveLinear(ctx, r.arm, goal, r.conf.Resolution, r.conf.LinearSpeed, r.clk, r.logger)
	case StrategySegmented:
		return arm.MoveSegmented(ctx, r.arm, goal, r.conf.Segments, r.conf.SegmentPacing, r.clk, r.logger)
	default:
		return nil, errors.Errorf("unknown move strategy %q", strategy)
	}
}

func (r *Routine) exerciseGripper(ctx context.Context) error {
	r.logger.Debugw("exercising gripper", "gripper", r.gripper.Name(), "open_degrees", r.conf.GripperOpenDegrees)
	if err := gripper.Open(ctx, r.gripper, r.conf.GripperOpenDegrees); err != nil {
		return err
	}
	if err := r.wait(ctx, r.conf.GripperPause); err != nil {
		return err
	}
	return gripper.Close(ctx, r.gripper)
}

// wait blocks for d on the routine's clock or until ctx is done.
func (r *Routine) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	if !utils.SelectContextOrWaitChan(ctx, r.clk.After(d)) {
		return ctx.Err()
	}
	return nil
}
