package engine

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/opencoil/coilwinder/internal/model"
)

// geometric comparison tolerance in mm
const tol = 1e-6

// WindBySections partitions the primary-axis window length into
// per-winding conduction sections by replaying the pattern, inserting an
// insulation section wherever two adjacent conduction sections belong to
// differing isolation sides. Sections are emitted in pattern order even
// when their total length exceeds the window; capacity is judged later
// by the fit check.
func (w *Winder) WindBySections(coil *model.Coil, repetitions int, proportions map[int]float64, pattern model.Pattern, margins [][2]float64) error {
	if repetitions < 1 {
		return fmt.Errorf("repetitions must be at least 1, got %d", repetitions)
	}
	if err := pattern.Validate(len(coil.Windings)); err != nil {
		return err
	}
	if len(margins) != 0 && len(margins) != len(pattern) {
		return fmt.Errorf("got %d margin pairs for a %d-slot pattern", len(margins), len(pattern))
	}

	filled, err := fillProportions(proportions, len(coil.Windings))
	if err != nil {
		return err
	}

	insThickness, _, err := w.insulationBuild()
	if err != nil {
		return err
	}

	window := coil.Bobbin.PrimaryLength(w.Settings.Orientation)
	replay := pattern.Replay(repetitions)

	sections := make([]model.Section, 0, len(replay))
	cursor := 0.0
	prevSide := model.IsolationSide("")
	var prevWire model.Wire
	for slot, widx := range replay {
		winding := coil.Windings[widx]

		if slot > 0 && winding.Isolation != prevSide && insThickness > 0 &&
			!w.wireInsulationSuffices(prevWire, winding.Wire) {
			sections = append(sections, model.Section{
				ID:           model.ShortID(),
				Name:         fmt.Sprintf("insulation section %d", len(sections)),
				Type:         model.TypeInsulation,
				WindingIndex: -1,
				PatternSlot:  -1,
				Start:        cursor,
				Length:       insThickness,
			})
			cursor += insThickness
		}

		length := filled[widx] * window / float64(repetitions)
		sec := model.Section{
			ID:           model.ShortID(),
			Name:         fmt.Sprintf("%s section %d", winding.Name, slot),
			Type:         model.TypeConduction,
			WindingIndex: widx,
			PatternSlot:  slot,
			Start:        cursor,
			Length:       length,
		}
		if w.Settings.AllowMarginTape && len(margins) > 0 {
			pair := margins[slot%len(pattern)]
			sec.MarginStart = pair[0]
			sec.MarginEnd = pair[1]
		}
		sections = append(sections, sec)
		cursor += length
		prevSide = winding.Isolation
		prevWire = winding.Wire
	}

	coil.Sections = sections
	distributeTurns(coil)
	return nil
}

// wireInsulationSuffices reports whether the wires on both sides of an
// isolation boundary carry enough of their own insulation to stand in
// for an insulation section. Requires the AllowInsulatedWire setting and
// a triple-insulated build on both wires.
func (w *Winder) wireInsulationSuffices(a, b model.Wire) bool {
	return w.Settings.AllowInsulatedWire && a.TripleInsulated() && b.TripleInsulated()
}

// fillProportions completes a partial proportion map: explicit entries
// are kept, and the unassigned remainder of the window is split evenly
// among windings lacking an explicit proportion. Explicit proportions
// summing past 1 are a specification error.
func fillProportions(proportions map[int]float64, windingCount int) ([]float64, error) {
	explicit := make([]float64, 0, len(proportions))
	for idx, p := range proportions {
		if idx < 0 || idx >= windingCount {
			return nil, &model.PatternMismatchError{Index: idx, WindingCount: windingCount}
		}
		if p < 0 {
			return nil, fmt.Errorf("winding %d has negative proportion %.4f", idx, p)
		}
		explicit = append(explicit, p)
	}
	total := floats.Sum(explicit)
	if total > 1+tol {
		return nil, &model.ProportionOverflowError{Total: total}
	}

	unassigned := windingCount - len(proportions)
	filled := make([]float64, windingCount)
	for i := range filled {
		if p, ok := proportions[i]; ok {
			filled[i] = p
		} else {
			filled[i] = (1 - total) / float64(unassigned)
		}
	}
	return filled, nil
}

// distributeTurns splits each winding's declared turn count over the
// conduction sections it occupies. Every section gets the integer base
// share; the remainder goes one turn each to the earliest sections in
// pattern order, so the tie-break is deterministic and does not depend
// on map iteration order.
func distributeTurns(coil *model.Coil) {
	for widx := range coil.Windings {
		secs := coil.SectionsByWinding(widx)
		if len(secs) == 0 {
			continue
		}
		base := coil.Windings[widx].Turns / len(secs)
		rem := coil.Windings[widx].Turns % len(secs)
		for i, si := range secs {
			coil.Sections[si].TurnCount = base
			if i < rem {
				coil.Sections[si].TurnCount++
			}
		}
	}
}
