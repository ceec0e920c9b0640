package model

import (
	"fmt"
	"math"
)

// IsolationSide represents the electrical isolation grouping a winding
// belongs to. Windings on different sides require insulation between
// them; windings on the same side do not.
type IsolationSide string

const (
	IsolationPrimary   IsolationSide = "primary"
	IsolationSecondary IsolationSide = "secondary"
	IsolationTertiary  IsolationSide = "tertiary"
)

// IsolationSideFromIndex maps a winding index to its conventional
// isolation side: winding 0 is the primary, everything after it a
// numbered secondary.
func IsolationSideFromIndex(index int) IsolationSide {
	switch index {
	case 0:
		return IsolationPrimary
	case 1:
		return IsolationSecondary
	default:
		return IsolationSide(fmt.Sprintf("secondary %d", index))
	}
}

// Winding represents one named winding to be placed: its declared turn
// count, the wire it is wound with, and its isolation side.
type Winding struct {
	Name      string        `json:"name" toml:"name"`
	Index     int           `json:"index" toml:"-"`
	Turns     int           `json:"turns" toml:"turns"`
	Wire      Wire          `json:"wire" toml:"wire"`
	Isolation IsolationSide `json:"isolation" toml:"isolation"`
}

// NewWinding returns a winding with the isolation side derived from its
// index.
func NewWinding(name string, index, turns int, wire Wire) Winding {
	return Winding{
		Name:      name,
		Index:     index,
		Turns:     turns,
		Wire:      wire,
		Isolation: IsolationSideFromIndex(index),
	}
}

// Pattern represents one repetition unit of the winding order as a
// sequence of winding indices. [0, 1] repeated twice gives the
// interleaved order 0-1-0-1.
type Pattern []int

// Validate checks every slot against the coil's winding count.
func (p Pattern) Validate(windingCount int) error {
	if len(p) == 0 {
		return fmt.Errorf("pattern is empty")
	}
	for _, idx := range p {
		if idx < 0 || idx >= windingCount {
			return &PatternMismatchError{Index: idx, WindingCount: windingCount}
		}
	}
	return nil
}

// Replay expands the pattern into the explicit slot sequence for the
// given repetition count. The result is a fresh slice; no iterator state
// is shared between pipeline stages.
func (p Pattern) Replay(repetitions int) []int {
	out := make([]int, 0, len(p)*repetitions)
	for r := 0; r < repetitions; r++ {
		out = append(out, p...)
	}
	return out
}

// Occurrences counts how many slots of the replayed pattern belong to
// the given winding.
func (p Pattern) Occurrences(winding, repetitions int) int {
	n := 0
	for _, idx := range p {
		if idx == winding {
			n++
		}
	}
	return n * repetitions
}

// TurnsFromRatios derives every winding's turn count from the primary
// winding's count and a turns ratio per further winding (primary turns
// over that winding's turns). Design-search callers sweep the primary
// count while holding the ratios fixed. Rounded counts never drop below
// one turn.
func TurnsFromRatios(primaryTurns int, ratios []float64) ([]int, error) {
	if primaryTurns < 1 {
		return nil, fmt.Errorf("primary turns must be at least 1, got %d", primaryTurns)
	}
	turns := make([]int, 0, len(ratios)+1)
	turns = append(turns, primaryTurns)
	for i, r := range ratios {
		if r <= 0 {
			return nil, fmt.Errorf("turns ratio for winding %d must be positive, got %.4f", i+1, r)
		}
		n := int(math.Round(float64(primaryTurns) / r))
		if n < 1 {
			n = 1
		}
		turns = append(turns, n)
	}
	return turns, nil
}
