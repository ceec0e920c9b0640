package engine

import (
	"math"

	"github.com/opencoil/coilwinder/internal/model"
)

// Validate checks that every section and layer lies within the bobbin's
// window on both axes. It is a pure function of the coil and bobbin
// state: it never mutates anything and repeated calls return the same
// report, so it is cheap enough to use as an early reject inside a
// design-search loop. A layout that does not fit is a reported
// condition, not an error, and the overflow magnitudes say by how much
// each axis is exceeded.
func Validate(coil *model.Coil, orientation model.WindingOrientation) model.FitReport {
	primary := coil.Bobbin.PrimaryLength(orientation)
	secondary := coil.Bobbin.SecondaryLength(orientation)

	var overPrimary, overSecondary float64
	for _, s := range coil.Sections {
		overPrimary = math.Max(overPrimary, s.End()-primary)
		overPrimary = math.Max(overPrimary, -s.Start)
	}
	for _, l := range coil.Layers {
		if l.Type == model.TypeConduction {
			overSecondary = math.Max(overSecondary, l.End()-secondary)
			overSecondary = math.Max(overSecondary, -l.Start)
		} else {
			// Insulation wraps span the primary axis.
			overPrimary = math.Max(overPrimary, l.End()-primary)
			overPrimary = math.Max(overPrimary, -l.Start)
		}
	}

	if overPrimary < tol {
		overPrimary = 0
	}
	if overSecondary < tol {
		overSecondary = 0
	}
	return model.FitReport{
		Fits:              overPrimary == 0 && overSecondary == 0,
		PrimaryOverflow:   overPrimary,
		SecondaryOverflow: overSecondary,
	}
}
