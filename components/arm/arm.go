// Package arm defines the arm that Cartesian trajectories are streamed to.
package arm

import (
	"context"

	"github.com/dvrk-tools/cartinterp/spatialmath"
)

// An Arm represents a physical robot arm whose end-effector can be commanded in Cartesian space.
type Arm interface {
	// Name returns the name the arm was configured with.
	Name() string

	// EndPosition returns the current pose of the end-effector.
	EndPosition(ctx context.Context) (spatialmath.Pose, error)

	// MoveToPosition commands the end-effector to the given pose. Implementations do no
	// interpolation of their own, so callers are expected to send poses close together.
	MoveToPosition(ctx context.Context, pose spatialmath.Pose) error

	// Stop stops the arm as soon as possible.
	Stop(ctx context.Context) error

	// IsMoving returns whether the arm is moving.
	IsMoving(ctx context.Context) (bool, error)
}
