// Package gripper defines the jaw gripper mounted on the end of an arm.
package gripper

import (
	"context"
)

// A Gripper is a jaw gripper whose opening is set as an angle in degrees. Zero is closed.
type Gripper interface {
	// Name returns the name the gripper was configured with.
	Name() string

	// SetAngle opens the jaws to the given angle in degrees.
	SetAngle(ctx context.Context, degrees float64) error

	// Angle returns the current jaw angle in degrees.
	Angle(ctx context.Context) (float64, error)
}

// Open opens the gripper to the given angle in degrees.
func Open(ctx context.Context, g Gripper, degrees float64) error {
	return g.SetAngle(ctx, degrees)
}

// Close closes the gripper.
func Close(ctx context.Context, g Gripper) error {
	return g.SetAngle(ctx, 0)
}
