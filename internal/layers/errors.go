package layers

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch reports a rank or dimension-agreement violation.
	// It is returned before any computation starts.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrSizeMismatch reports operands with different element counts.
	ErrSizeMismatch = errors.New("size mismatch")
)

func shapeError(op, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, ErrShapeMismatch, fmt.Sprintf(format, args...))
}
