package engine

import (
	"fmt"

	"github.com/opencoil/coilwinder/internal/model"
)

// WindByTurns places the discrete turns of every conduction layer along
// the section's usable span, at positions chosen by the turn alignment
// policy. Each turn's length is derived from the bobbin's mean turn path
// at its radial position. After placement the turn totals are checked
// against the declared counts; a mismatch is an internal defect of the
// partitioning, not a user error.
func (w *Winder) WindByTurns(coil *model.Coil) error {
	if len(coil.Layers) == 0 {
		return fmt.Errorf("coil has no layers, run the layer partitioner first")
	}

	var turns []model.Turn
	for li := range coil.Layers {
		layer := &coil.Layers[li]
		if layer.Type != model.TypeConduction || layer.TurnCount == 0 {
			continue
		}
		sec := coil.Sections[layer.SectionIndex]
		usableStart := sec.Start + sec.MarginStart
		centers := turnCenters(usableStart, sec.UsableLength(), layer.TurnCount, layer.WireSpacing, w.Settings.TurnAlignment)
		secondary := layer.Start + layer.Thickness/2
		for i, primary := range centers {
			t := model.Turn{
				ID:           model.ShortID(),
				Name:         fmt.Sprintf("%s turn %d", layer.Name, i),
				WindingIndex: layer.WindingIndex,
				SectionIndex: layer.SectionIndex,
				LayerIndex:   li,
				Primary:      primary,
				Secondary:    secondary,
			}
			t.Length = w.turnLength(coil.Bobbin, t)
			turns = append(turns, t)
		}
	}
	coil.Turns = turns

	for widx, winding := range coil.Windings {
		if placed := coil.PlacedTurns(widx); placed != winding.Turns {
			return &model.TurnConservationError{
				Winding:  winding.Name,
				Declared: winding.Turns,
				Placed:   placed,
			}
		}
	}
	return nil
}

// turnCenters returns the primary-axis center coordinates for n turns of
// the given spacing within [start, start+usable), per the alignment
// policy. Turn i sits i spacings from the policy's origin; spread opens
// equal gaps between turns and centered leaves symmetric margins.
func turnCenters(start, usable float64, n int, spacing float64, alignment model.CoilAlignment) []float64 {
	centers := make([]float64, n)
	slack := usable - float64(n)*spacing

	switch alignment {
	case model.AlignOuterOrBottom:
		for i := 0; i < n; i++ {
			centers[i] = start + usable - (float64(n-i)-0.5)*spacing
		}
	case model.AlignCentered:
		for i := 0; i < n; i++ {
			centers[i] = start + slack/2 + (float64(i)+0.5)*spacing
		}
	case model.AlignSpread:
		gap := 0.0
		if n > 1 {
			gap = slack / float64(n-1)
		} else {
			// A single spread turn sits centered.
			start += slack / 2
		}
		for i := 0; i < n; i++ {
			centers[i] = start + (float64(i)+0.5)*spacing + float64(i)*gap
		}
	default: // inner or top
		for i := 0; i < n; i++ {
			centers[i] = start + (float64(i)+0.5)*spacing
		}
	}
	return centers
}

// turnLength derives a turn's length from its radial position. Which
// coordinate is radial depends on the winding orientation: layers stack
// radially for contiguous windings, sections do for overlapping ones.
func (w *Winder) turnLength(bobbin *model.Bobbin, t model.Turn) float64 {
	radial := t.Secondary
	if w.Settings.Orientation == model.OrientationOverlapping {
		radial = t.Primary
	}
	return bobbin.MeanTurnLength(radial)
}
