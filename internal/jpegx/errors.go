package jpegx

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensions reports planes that are empty, mismatched or not aligned
	// to the block grid of the layout.
	ErrDimensions = errors.New("jpeg: invalid plane dimensions")
	// ErrQuality reports a quality outside [1, 100].
	ErrQuality = errors.New("jpeg: quality out of range [1, 100]")
	// ErrLayout reports an inconsistent component layout.
	ErrLayout = errors.New("jpeg: invalid component layout")
)

// InvariantError is a defect detected mid-encode: a value produced by an
// earlier stage that the later stage cannot represent.
type InvariantError struct {
	Component int
	BlockX    int
	BlockY    int
	Reason    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("jpeg: internal invariant failure in component %d block (%d,%d): %s",
		e.Component, e.BlockX, e.BlockY, e.Reason)
}
