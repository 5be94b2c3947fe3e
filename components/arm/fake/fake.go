// Package fake implements a fake arm.
package fake

import (
	"context"
	"math"
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/dvrk-tools/cartinterp/components/arm"
	"github.com/dvrk-tools/cartinterp/logging"
	"github.com/dvrk-tools/cartinterp/spatialmath"
)

// Commanded orientations further than this from unit length are rejected.
const unitTolerance = 1e-6

var _ = arm.Arm(&Arm{})

// Arm is a fake arm that jumps straight to every commanded pose and remembers them.
type Arm struct {
	name   string
	logger logging.Logger

	// MaxStep, when positive, is the largest distance in meters the arm accepts in a single command.
	MaxStep float64
	// FailAfter, when positive, makes every command after the first FailAfter accepted ones fail.
	FailAfter int

	mu        sync.RWMutex
	pose      spatialmath.Pose
	history   []spatialmath.Pose
	stopCount int
}

// NewArm returns a new fake arm resting at start.
func NewArm(name string, start spatialmath.Pose, logger logging.Logger) *Arm {
	return &Arm{name: name, logger: logger, pose: start}
}

// Name returns the name of the arm.
func (a *Arm) Name() string {
	return a.name
}

// EndPosition returns the last pose the arm was moved to.
func (a *Arm) EndPosition(ctx context.Context) (spatialmath.Pose, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.pose, nil
}

// MoveToPosition sets the position.
func (a *Arm) MoveToPosition(ctx context.Context, pose spatialmath.Pose) error {
	if n := quat.Abs(pose.Orientation()); math.Abs(n-1) > unitTolerance {
		return errors.Errorf("cannot move arm %q: orientation has norm %v", a.name, n)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.FailAfter > 0 && len(a.history) >= a.FailAfter {
		return errors.Errorf("cannot move arm %q: injected failure after %d moves", a.name, a.FailAfter)
	}
	if jump := a.pose.Point().Distance(pose.Point()); a.MaxStep > 0 && jump > a.MaxStep*(1+1e-9) {
		return errors.Errorf("cannot move arm %q: jump of %vm exceeds the %vm limit", a.name, jump, a.MaxStep)
	}
	a.pose = pose
	a.history = append(a.history, pose)
	return nil
}

// Stop records that the arm was asked to stop.
func (a *Arm) Stop(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopCount++
	a.logger.Debugw("fake arm stopped", "arm", a.name, "moves", len(a.history))
	return nil
}

// IsMoving is always false for a fake arm.
func (a *Arm) IsMoving(ctx context.Context) (bool, error) {
	return false, nil
}

// Positions returns every pose the arm has been moved to, oldest first.
func (a *Arm) Positions() []spatialmath.Pose {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]spatialmath.Pose(nil), a.history...)
}

// StopCount returns how many times Stop has been called.
func (a *Arm) StopCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stopCount
}
