// Package engine implements the winding-placement pipeline: the winding
// window is partitioned into per-winding sections, sections into
// insulated layers, layers into individual turn positions. Each stage
// consumes the immutable output of the previous one; the whole pipeline
// is pure and side-effect-free, so callers may run many invocations in
// parallel over candidate designs.
package engine

import (
	"fmt"

	"github.com/opencoil/coilwinder/internal/model"
)

// Winder runs the placement pipeline.
type Winder struct {
	Settings model.WindSettings
	// Insulation describes the build of insulation sections inserted
	// between differing isolation sides. A zero value falls back to the
	// thickness and standard named in Settings.
	Insulation model.InsulationSpec
}

// New returns a winder with the given settings.
func New(settings model.WindSettings) *Winder {
	return &Winder{Settings: settings}
}

// Wind runs the complete pipeline on the coil: sections, layers, turns,
// optional compaction, fit check. Specification errors (bad pattern,
// overflowing proportions, unresolvable wire dimensions) fail fast
// before any placement work. Capacity problems never fail: the layout is
// produced in full and judged by the fit report, so a design search can
// probe infeasible configurations and measure the overflow margin.
func (w *Winder) Wind(coil *model.Coil, repetitions int, proportions map[int]float64, pattern model.Pattern, margins [][2]float64) (model.WindResult, error) {
	coil.ResetPlacement()

	if err := w.WindBySections(coil, repetitions, proportions, pattern, margins); err != nil {
		return model.WindResult{}, err
	}
	if err := w.WindByLayers(coil); err != nil {
		return model.WindResult{}, err
	}
	if err := w.WindByTurns(coil); err != nil {
		return model.WindResult{}, err
	}
	if w.Settings.DelimitAndCompact {
		if err := w.Compact(coil); err != nil {
			return model.WindResult{}, err
		}
	}

	report := Validate(coil, w.Settings.Orientation)

	// One retry with compaction forced on. Compaction only removes
	// avoidable gaps, so this can rescue layouts that overflow due to
	// conservative partitioning.
	if !report.Fits && w.Settings.TryRewind && !w.Settings.DelimitAndCompact {
		if err := w.Compact(coil); err != nil {
			return model.WindResult{}, err
		}
		report = Validate(coil, w.Settings.Orientation)
	}

	return model.WindResult{Coil: coil, Fit: report}, nil
}

// insulationBuild resolves the thickness and wrap count of one
// insulation section.
func (w *Winder) insulationBuild() (thickness float64, layers int, err error) {
	spec := w.Insulation
	if spec.Standard == "" {
		spec.Standard = w.Settings.InsulationStandard
	}
	if spec.Thickness.IsZero() && w.Settings.InsulationThickness > 0 {
		spec.Thickness = model.Dim(w.Settings.InsulationThickness)
	}
	thickness, layers, err = spec.Resolve()
	if err != nil {
		return 0, 0, fmt.Errorf("insulation spec: %w", err)
	}
	return thickness, layers, nil
}
