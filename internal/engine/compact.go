package engine

import (
	"fmt"

	"github.com/opencoil/coilwinder/internal/model"
)

// Compact removes the avoidable empty space a conservative partition
// leaves behind and reapplies the configured alignment. Sections shrink
// to the extent their turns actually need (or, with
// FillSectionsWithMarginTape, keep their length and convert the slack to
// margin tape), the section stack is re-seated in the window per the
// section alignment, and turns are repositioned. Turn counts, winding
// assignment and layer membership never change, only coordinates.
// Compacting an already compact coil yields an identical layout.
func (w *Winder) Compact(coil *model.Coil) error {
	if len(coil.Sections) == 0 {
		return fmt.Errorf("coil has no sections to compact")
	}

	w.shrinkSections(coil)
	w.restackSections(coil)
	w.reseatLayers(coil)
	w.repositionTurns(coil)
	return nil
}

// shrinkSections reduces each conduction section to the primary extent
// its widest layer needs, plus margin tape.
func (w *Winder) shrinkSections(coil *model.Coil) {
	fill := w.Settings.FillSectionsWithMarginTape && w.Settings.AllowMarginTape
	for si := range coil.Sections {
		sec := &coil.Sections[si]
		if sec.Type != model.TypeConduction {
			continue
		}
		needed := 0.0
		for _, li := range coil.LayersBySection(si) {
			l := coil.Layers[li]
			if extent := float64(l.TurnCount) * l.WireSpacing; extent > needed {
				needed = extent
			}
		}
		slack := sec.Length - sec.MarginStart - sec.MarginEnd - needed
		if slack <= tol {
			continue
		}
		if fill {
			// Keep the section length and grow the tape inward so the
			// conducting span exactly holds the turns.
			sec.MarginStart += slack / 2
			sec.MarginEnd += slack / 2
		} else {
			sec.Length = needed + sec.MarginStart + sec.MarginEnd
		}
	}
}

// restackSections lays the sections back to back and seats the stack in
// the window per the section alignment. When the stack overflows the
// window it is seated at the origin; the fit check reports the excess.
func (w *Winder) restackSections(coil *model.Coil) {
	window := coil.Bobbin.PrimaryLength(w.Settings.Orientation)
	total := 0.0
	for _, s := range coil.Sections {
		total += s.Length
	}

	slack := window - total
	cursor := 0.0
	gap := 0.0
	if slack > 0 {
		switch w.Settings.SectionAlignment {
		case model.AlignOuterOrBottom:
			cursor = slack
		case model.AlignCentered:
			cursor = slack / 2
		case model.AlignSpread:
			if len(coil.Sections) > 1 {
				gap = slack / float64(len(coil.Sections)-1)
			} else {
				cursor = slack / 2
			}
		}
	}

	for si := range coil.Sections {
		coil.Sections[si].Start = cursor
		cursor += coil.Sections[si].Length + gap
	}
}

// reseatLayers re-packs each section's layers after its move: conduction
// layers from the secondary origin upward, insulation wraps across the
// section's new primary span.
func (w *Winder) reseatLayers(coil *model.Coil) {
	for si := range coil.Sections {
		sec := coil.Sections[si]
		lis := coil.LayersBySection(si)
		if sec.Type == model.TypeInsulation {
			if len(lis) == 0 {
				continue
			}
			per := sec.Length / float64(len(lis))
			for j, li := range lis {
				coil.Layers[li].Start = sec.Start + float64(j)*per
				coil.Layers[li].Thickness = per
			}
			continue
		}
		for j, li := range lis {
			coil.Layers[li].Start = float64(j) * coil.Layers[li].Thickness
		}
	}
}

// repositionTurns recomputes every turn's coordinates from its layer and
// section, preserving turn identity and order, and re-derives lengths
// from the new positions.
func (w *Winder) repositionTurns(coil *model.Coil) {
	for li := range coil.Layers {
		layer := coil.Layers[li]
		if layer.Type != model.TypeConduction || layer.TurnCount == 0 {
			continue
		}
		sec := coil.Sections[layer.SectionIndex]
		usableStart := sec.Start + sec.MarginStart
		centers := turnCenters(usableStart, sec.UsableLength(), layer.TurnCount, layer.WireSpacing, w.Settings.TurnAlignment)
		secondary := layer.Start + layer.Thickness/2
		for i, ti := range coil.TurnsByLayer(li) {
			t := &coil.Turns[ti]
			t.Primary = centers[i]
			t.Secondary = secondary
			t.Length = w.turnLength(coil.Bobbin, *t)
		}
	}
}
