// Package config defines the settings of the Cartesian interpolation demo and how they are read.
package config

import (
	"time"

	"github.com/golang/geo/r3"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
	"gonum.org/v1/gonum/num/quat"

	"github.com/dvrk-tools/cartinterp/spatialmath"
)

// Defaults for the demo, matching the tutorial that drives a dVRK patient side manipulator.
const (
	DefaultArm                = "PSM1"
	DefaultResolution         = 0.0001 // 0.1mm per segment
	DefaultLinearSpeed        = 0.01   // m/s
	DefaultSegments           = 100
	DefaultSegmentPacing      = 20 * time.Millisecond
	DefaultSettle             = 2 * time.Second
	DefaultGripperPause       = 100 * time.Millisecond
	DefaultGripperOpenDegrees = 80.
)

// Config describes the scripted move sequence.
type Config struct {
	// Arm is the name of the arm to drive.
	Arm string `json:"arm"`
	// Resolution is the largest distance in meters between consecutive poses of a linear move.
	Resolution float64 `json:"resolution_m"`
	// LinearSpeed is the Cartesian speed in meters per second of a linear move.
	LinearSpeed float64 `json:"linear_speed_mps"`
	// Segments is the number of steps of a segmented move.
	Segments int `json:"segments"`
	// SegmentPacing is the time between the poses of a segmented move.
	SegmentPacing time.Duration `json:"segment_pacing" jsonschema:"type=string,description=duration such as 20ms"`
	// Settle is how long to wait after each move.
	Settle time.Duration `json:"settle" jsonschema:"type=string,description=duration such as 2s"`
	// GripperPause is how long the gripper stays open before closing again.
	GripperPause       time.Duration `json:"gripper_pause" jsonschema:"type=string,description=duration such as 100ms"`
	GripperOpenDegrees float64       `json:"gripper_open_degrees"`
	// OffsetM is the world frame translation from the start pose to the end pose.
	OffsetM [3]float64 `json:"offset_m"`
	// RotationTBDegrees is the yaw, pitch and roll applied in the end pose's own frame.
	RotationTBDegrees [3]float64 `json:"rotation_tb_degrees"`
}

// Default returns the configuration the tutorial uses.
func Default() *Config {
	return &Config{
		Arm:                DefaultArm,
		Resolution:         DefaultResolution,
		LinearSpeed:        DefaultLinearSpeed,
		Segments:           DefaultSegments,
		SegmentPacing:      DefaultSegmentPacing,
		Settle:             DefaultSettle,
		GripperPause:       DefaultGripperPause,
		GripperOpenDegrees: DefaultGripperOpenDegrees,
		OffsetM:            [3]float64{0, -0.03, 0},
		RotationTBDegrees:  [3]float64{30, -60, 30},
	}
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if conf.Arm == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "arm")
	}

	var errs error
	if !(conf.Resolution > 0) {
		errs = multierr.Append(errs, errors.Errorf("resolution_m must be positive, got %v", conf.Resolution))
	}
	if !(conf.LinearSpeed > 0) {
		errs = multierr.Append(errs, errors.Errorf("linear_speed_mps must be positive, got %v", conf.LinearSpeed))
	}
	if conf.Segments < 1 {
		errs = multierr.Append(errs, errors.Errorf("segments must be at least 1, got %d", conf.Segments))
	}
	for _, d := range []struct {
		name string
		val  time.Duration
	}{
		{"segment_pacing", conf.SegmentPacing},
		{"settle", conf.Settle},
		{"gripper_pause", conf.GripperPause},
	} {
		if d.val < 0 {
			errs = multierr.Append(errs, errors.Errorf("%s must not be negative, got %v", d.name, d.val))
		}
	}
	if !(conf.GripperOpenDegrees > 0) {
		errs = multierr.Append(errs, errors.Errorf("gripper_open_degrees must be positive, got %v", conf.GripperOpenDegrees))
	}
	if errs != nil {
		return utils.NewConfigValidationError(path, errs)
	}
	return nil
}

// Offset returns OffsetM as a vector.
func (conf *Config) Offset() r3.Vector {
	return r3.Vector{X: conf.OffsetM[0], Y: conf.OffsetM[1], Z: conf.OffsetM[2]}
}

// Rotation returns RotationTBDegrees as a quaternion.
func (conf *Config) Rotation() quat.Number {
	return spatialmath.NewTaitBryanQuaternion(conf.RotationTBDegrees[0], conf.RotationTBDegrees[1], conf.RotationTBDegrees[2])
}

// Schema returns the JSON schema of the config file. Durations are written as strings such as "2s".
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
