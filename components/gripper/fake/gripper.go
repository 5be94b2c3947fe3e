// Package fake implements a fake gripper.
package fake

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/dvrk-tools/cartinterp/components/gripper"
)

// Angle limits of the fake jaws, in degrees.
const (
	MinAngle = 0.
	MaxAngle = 90.
)

var _ = gripper.Gripper(&Gripper{})

// Gripper is a fake gripper that can simply read and set its angle.
type Gripper struct {
	name string

	mu      sync.Mutex
	angle   float64
	history []float64
}

// NewGripper returns a closed fake gripper.
func NewGripper(name string) *Gripper {
	return &Gripper{name: name}
}

// Name returns the name of the gripper.
func (g *Gripper) Name() string {
	return g.name
}

// SetAngle sets the jaw angle.
func (g *Gripper) SetAngle(ctx context.Context, degrees float64) error {
	if !(degrees >= MinAngle && degrees <= MaxAngle) {
		return errors.Errorf("gripper %q angle %v is outside [%v, %v]", g.name, degrees, MinAngle, MaxAngle)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.angle = degrees
	g.history = append(g.history, degrees)
	return nil
}

// Angle returns the jaw angle.
func (g *Gripper) Angle(ctx context.Context) (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.angle, nil
}

// History returns every angle the gripper has been set to, oldest first.
func (g *Gripper) History() []float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]float64(nil), g.history...)
}
