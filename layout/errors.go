package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrBreaking reports a line break request that cannot be satisfied.
	ErrBreaking = errors.New("breaking error")
	// ErrNonConvergence is returned when an iterative layout loop exceeds MaxIterations.
	ErrNonConvergence = errors.New("max iterations exceeded")
	// ErrOverflow reports a box extending beyond its parent.
	ErrOverflow = errors.New("box overflow")
	// ErrInvalidPlacement is raised (via panic) for unknown anchor tokens.
	ErrInvalidPlacement = errors.New("invalid placement")
)

// MaxIterations caps every round-based layout loop.
const MaxIterations = 1000

// BreakingError carries the arguments of a rejected break.
type BreakingError struct {
	Len    int
	Min    int
	Max    int
	Reason string
}

func (e *BreakingError) Error() string {
	return fmt.Sprintf("%s (len=%d, min=%d, max=%d)", e.Reason, e.Len, e.Min, e.Max)
}

func (e *BreakingError) Unwrap() error { return ErrBreaking }

// OverflowError is returned when a box is not inside its parent outside of debug mode.
type OverflowError struct {
	Level     int
	Overflows Overflows
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("level %d: %s", e.Level, e.Overflows)
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }
