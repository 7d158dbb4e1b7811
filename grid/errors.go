package grid

import "errors"

var (
	// ErrInvalidSize indicates a non-positive grid dimension.
	ErrInvalidSize = errors.New("grid: size must be > 0")
	// ErrOutOfRange indicates coordinates outside the grid.
	ErrOutOfRange = errors.New("grid: coordinates out of range")
)
