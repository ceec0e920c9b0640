package model

import (
	"errors"
	"fmt"
)

// ErrInvalidDimension is returned when a Dimension carries no nominal
// value and no min/max bounds to resolve from.
var ErrInvalidDimension = errors.New("dimension has neither nominal nor min/max bounds")

// PatternMismatchError reports a pattern slot referencing a winding index
// that does not exist in the coil.
type PatternMismatchError struct {
	Index        int // offending winding index
	WindingCount int
}

func (e *PatternMismatchError) Error() string {
	return fmt.Sprintf("pattern references winding %d, coil has %d windings", e.Index, e.WindingCount)
}

// ProportionOverflowError reports explicit per-winding proportions that
// already sum past 1 before the unassigned remainder is distributed.
type ProportionOverflowError struct {
	Total float64
}

func (e *ProportionOverflowError) Error() string {
	return fmt.Sprintf("explicit winding proportions sum to %.4f, exceeding 1", e.Total)
}

// TurnConservationError reports a winding whose placed turns do not match
// its declared turn count. This is an internal defect of the placement
// algorithm, not a user input error.
type TurnConservationError struct {
	Winding  string
	Declared int
	Placed   int
}

func (e *TurnConservationError) Error() string {
	return fmt.Sprintf("winding %q declared %d turns but %d were placed", e.Winding, e.Declared, e.Placed)
}
