package motionplan

import "github.com/pkg/errors"

// ErrInvalidArgument is the cause of every error returned for inputs that cannot be interpolated.
// Callers should match it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

func newInvalidArgumentError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
