package model

import "fmt"

// WireType represents the conductor construction of a wire.
type WireType string

const (
	WireRound       WireType = "round"
	WireLitz        WireType = "litz"
	WireRectangular WireType = "rectangular"
	WireFoil        WireType = "foil"
)

// Wire represents a wire specification. Dimensions are toleranced mm
// values; the outer dimensions include the insulation coating and are
// what placement works with. When an outer dimension is absent the
// conducting dimension is used as a fallback (bare wire).
type Wire struct {
	Name string   `json:"name" toml:"name"`
	Type WireType `json:"type" toml:"type"`

	// Round and litz wires
	ConductingDiameter Dimension `json:"conducting_diameter,omitempty" toml:"conducting_diameter"`
	OuterDiameter      Dimension `json:"outer_diameter,omitempty" toml:"outer_diameter"`

	// Rectangular and foil wires. Width runs along the layer, height is
	// the stacking thickness. For foil the width is the foil depth and
	// the height spans the section.
	ConductingWidth  Dimension `json:"conducting_width,omitempty" toml:"conducting_width"`
	ConductingHeight Dimension `json:"conducting_height,omitempty" toml:"conducting_height"`
	OuterWidth       Dimension `json:"outer_width,omitempty" toml:"outer_width"`
	OuterHeight      Dimension `json:"outer_height,omitempty" toml:"outer_height"`

	// Insulation grade per IEC 60317 (1 = single build, 3 = triple)
	Grade int `json:"grade,omitempty" toml:"grade"`
	// Strand count for litz wires
	Strands int `json:"strands,omitempty" toml:"strands"`
}

// NewRoundWire returns a round wire with the given conducting and outer
// diameters in mm.
func NewRoundWire(name string, conducting, outer float64) Wire {
	return Wire{
		Name:               name,
		Type:               WireRound,
		ConductingDiameter: Dim(conducting),
		OuterDiameter:      Dim(outer),
		Grade:              1,
	}
}

// NewFoilWire returns a foil wire with the given foil thickness and
// height in mm.
func NewFoilWire(name string, thickness, height float64) Wire {
	return Wire{
		Name:             name,
		Type:             WireFoil,
		ConductingWidth:  Dim(thickness),
		ConductingHeight: Dim(height),
		OuterWidth:       Dim(thickness),
		OuterHeight:      Dim(height),
	}
}

// OuterDimensions resolves the wire's placement footprint: spacing is
// the advance per turn along a layer, thickness is the layer stacking
// height. Foil wires report their stacking thickness as spacing for
// completeness even though a foil layer always holds a single turn.
func (w Wire) OuterDimensions() (spacing, thickness float64, err error) {
	switch w.Type {
	case WireRound, WireLitz:
		d, err := firstPresent(w.OuterDiameter, w.ConductingDiameter).Resolve()
		if err != nil {
			return 0, 0, fmt.Errorf("wire %q outer diameter: %w", w.Name, err)
		}
		return d, d, nil
	case WireRectangular:
		width, err := firstPresent(w.OuterWidth, w.ConductingWidth).Resolve()
		if err != nil {
			return 0, 0, fmt.Errorf("wire %q outer width: %w", w.Name, err)
		}
		height, err := firstPresent(w.OuterHeight, w.ConductingHeight).Resolve()
		if err != nil {
			return 0, 0, fmt.Errorf("wire %q outer height: %w", w.Name, err)
		}
		return width, height, nil
	case WireFoil:
		t, err := firstPresent(w.OuterWidth, w.ConductingWidth).Resolve()
		if err != nil {
			return 0, 0, fmt.Errorf("wire %q foil thickness: %w", w.Name, err)
		}
		return t, t, nil
	default:
		return 0, 0, fmt.Errorf("wire %q has unknown type %q", w.Name, w.Type)
	}
}

// TripleInsulated reports whether the wire's own coating is a
// reinforced build (IEC 60317 grade 3 or better).
func (w Wire) TripleInsulated() bool {
	return w.Grade >= 3
}

// firstPresent returns the first dimension that carries any bound.
func firstPresent(dims ...Dimension) Dimension {
	for _, d := range dims {
		if !d.IsZero() {
			return d
		}
	}
	return Dimension{}
}

func (t WireType) String() string {
	if t == "" {
		return string(WireRound)
	}
	return string(t)
}
