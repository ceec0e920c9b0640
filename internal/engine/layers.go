package engine

import (
	"fmt"
	"math"

	"github.com/opencoil/coilwinder/internal/model"
)

// WindByLayers partitions each section into layers. Conduction sections
// get the minimum number of wire layers that hold their assigned turns,
// stacked without gaps along the secondary axis; the final layer may be
// partially filled. Insulation sections get one layer per tape wrap,
// subdividing the section's primary span. Capacity is never enforced
// here: a section that needs more stacking depth than the window offers
// still gets all its layers, and the fit check reports the overflow.
func (w *Winder) WindByLayers(coil *model.Coil) error {
	if len(coil.Sections) == 0 {
		return fmt.Errorf("coil has no sections, run the section partitioner first")
	}

	_, insLayerCount, err := w.insulationBuild()
	if err != nil {
		return err
	}

	var layers []model.Layer
	for si := range coil.Sections {
		sec := &coil.Sections[si]
		switch sec.Type {
		case model.TypeInsulation:
			layers = append(layers, insulationLayers(sec, si, insLayerCount, w.Insulation.Material)...)
		default:
			wls, err := w.conductionLayers(coil, sec, si)
			if err != nil {
				return err
			}
			layers = append(layers, wls...)
		}
	}
	coil.Layers = layers
	return nil
}

// conductionLayers splits a conduction section's turns over the minimum
// layer count.
func (w *Winder) conductionLayers(coil *model.Coil, sec *model.Section, si int) ([]model.Layer, error) {
	winding := coil.Windings[sec.WindingIndex]
	spacing, thickness, err := winding.Wire.OuterDimensions()
	if err != nil {
		return nil, err
	}
	if spacing <= 0 || thickness <= 0 {
		return nil, fmt.Errorf("wire %q resolves to a non-positive outer dimension", winding.Wire.Name)
	}
	if sec.TurnCount == 0 {
		// A winding split over more sections than it has turns leaves
		// some sections empty.
		return nil, nil
	}

	perLayer := turnsPerLayer(sec.UsableLength(), spacing, winding.Wire.Type)
	layerCount := int(math.Ceil(float64(sec.TurnCount) / float64(perLayer)))
	if layerCount < 1 {
		layerCount = 1
	}

	layers := make([]model.Layer, 0, layerCount)
	remaining := sec.TurnCount
	for j := 0; j < layerCount; j++ {
		count := perLayer
		if count > remaining {
			count = remaining
		}
		layers = append(layers, model.Layer{
			ID:           model.ShortID(),
			Name:         fmt.Sprintf("%s layer %d", sec.Name, j),
			Type:         model.TypeConduction,
			SectionIndex: si,
			WindingIndex: sec.WindingIndex,
			Start:        float64(j) * thickness,
			Thickness:    thickness,
			TurnCount:    count,
			WireSpacing:  spacing,
		})
		remaining -= count
	}
	return layers, nil
}

// turnsPerLayer returns how many whole wire widths fit the usable
// conducting length. A foil layer always holds exactly one turn. When
// even a single turn does not fit, one is still allowed per layer so
// every declared turn gets placed; the resulting overflow is reported by
// the fit check instead of truncating the winding.
func turnsPerLayer(usable, spacing float64, wireType model.WireType) int {
	if wireType == model.WireFoil {
		return 1
	}
	n := int((usable + tol) / spacing)
	if n < 1 {
		return 1
	}
	return n
}

// insulationLayers subdivides an insulation section's primary span into
// one layer per tape wrap.
func insulationLayers(sec *model.Section, si, wraps int, material string) []model.Layer {
	if wraps < 1 {
		wraps = 1
	}
	if material == "" {
		material = "polyimide tape"
	}
	per := sec.Length / float64(wraps)
	layers := make([]model.Layer, 0, wraps)
	for j := 0; j < wraps; j++ {
		layers = append(layers, model.Layer{
			ID:           model.ShortID(),
			Name:         fmt.Sprintf("%s layer %d", sec.Name, j),
			Type:         model.TypeInsulation,
			SectionIndex: si,
			WindingIndex: -1,
			Start:        sec.Start + float64(j)*per,
			Thickness:    per,
			Material:     material,
		})
	}
	return layers
}
