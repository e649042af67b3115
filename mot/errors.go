package mot

import "github.com/pkg/errors"

var (
	// ErrInvalidConfig is returned when tracker parameters are out of range
	ErrInvalidConfig = errors.New("invalid tracker configuration")
	// ErrBadDetection is returned when a raw detection can not be parsed
	ErrBadDetection = errors.New("bad detection")
	// ErrNonFiniteCost is returned when a track/detection pair can not be scored
	ErrNonFiniteCost = errors.New("non-finite matching cost")
)
