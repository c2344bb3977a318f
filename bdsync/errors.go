package bdsync

import "github.com/pkg/errors"

var (
	// ErrInterrupted is returned when the run context is cancelled between blocks.
	ErrInterrupted = errors.New("interrupted")

	// ErrInvalidBlockSize is returned for a native block size that is not positive.
	ErrInvalidBlockSize = errors.New("block size must be positive")
)

// IOError is a fatal transfer failure on a named device.
type IOError struct {
	Op     string
	Device string
	Err    error
}

func (e *IOError) Error() string {
	return e.Device + ": " + e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }
