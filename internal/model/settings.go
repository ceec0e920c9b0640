package model

// WindingOrientation selects which window axis sections partition.
type WindingOrientation string

const (
	// OrientationContiguous places sections side by side along the axial
	// window height; layers stack radially.
	OrientationContiguous WindingOrientation = "contiguous"
	// OrientationOverlapping stacks sections radially as concentric
	// shells; layers stack axially.
	OrientationOverlapping WindingOrientation = "overlapping"
)

// CoilAlignment represents how placed elements align within their
// available span.
type CoilAlignment string

const (
	AlignInnerOrTop    CoilAlignment = "inner or top"
	AlignOuterOrBottom CoilAlignment = "outer or bottom"
	AlignSpread        CoilAlignment = "spread"
	AlignCentered      CoilAlignment = "centered"
)

// AvailableOrientations returns the selectable winding orientations.
func AvailableOrientations() []string {
	return []string{string(OrientationContiguous), string(OrientationOverlapping)}
}

// AvailableAlignments returns the selectable coil alignments.
func AvailableAlignments() []string {
	return []string{
		string(AlignInnerOrTop),
		string(AlignOuterOrBottom),
		string(AlignSpread),
		string(AlignCentered),
	}
}

// WindSettings holds winding engine configuration. The flags select
// optional behaviors; none of them alter the placement contracts.
type WindSettings struct {
	Orientation WindingOrientation `json:"orientation" toml:"orientation"`
	// SectionAlignment positions the section stack along the primary
	// axis after compaction.
	SectionAlignment CoilAlignment `json:"section_alignment" toml:"section_alignment"`
	// TurnAlignment positions turns within each layer's conducting span.
	TurnAlignment CoilAlignment `json:"turn_alignment" toml:"turn_alignment"`

	AllowMarginTape bool `json:"allow_margin_tape" toml:"allow_margin_tape"`
	// AllowInsulatedWire lets triple-insulated wire satisfy the isolation
	// requirement on its own: no insulation section is inserted between
	// sides when the wires on both sides are grade 3 or better.
	AllowInsulatedWire         bool `json:"allow_insulated_wire" toml:"allow_insulated_wire"`
	FillSectionsWithMarginTape bool `json:"fill_sections_with_margin_tape" toml:"fill_sections_with_margin_tape"`
	// WindEvenIfNotFit keeps the computed layout available to callers
	// when it exceeds the window, instead of treating it as a failure.
	WindEvenIfNotFit bool `json:"wind_even_if_not_fit" toml:"wind_even_if_not_fit"`
	// TryRewind retries a non-fitting layout once with compaction forced
	// on before reporting the result.
	TryRewind         bool `json:"try_rewind" toml:"try_rewind"`
	DelimitAndCompact bool `json:"delimit_and_compact" toml:"delimit_and_compact"`

	// InsulationThickness is the default thickness in mm of an insulation
	// section inserted between conduction sections of differing isolation
	// sides.
	InsulationThickness float64 `json:"insulation_thickness" toml:"insulation_thickness"`
	// InsulationStandard names the safety standard whose minimums apply
	// to insulation between isolation sides.
	InsulationStandard string `json:"insulation_standard" toml:"insulation_standard"`
}

// DefaultSettings returns the winding settings used when a design does
// not override them.
func DefaultSettings() WindSettings {
	return WindSettings{
		Orientation:                OrientationContiguous,
		SectionAlignment:           AlignInnerOrTop,
		TurnAlignment:              AlignCentered,
		AllowMarginTape:            true,
		AllowInsulatedWire:         true,
		FillSectionsWithMarginTape: false,
		WindEvenIfNotFit:           false,
		TryRewind:                  true,
		DelimitAndCompact:          true,
		InsulationThickness:        0.05,
		InsulationStandard:         "Basic",
	}
}
