package stats

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every error returned from this package.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func requireValues(name string, values []float64) error {
	if len(values) == 0 {
		return invalidArgument("%s must not be empty", name)
	}
	return nil
}
