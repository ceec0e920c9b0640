package model

import (
	"fmt"

	"github.com/google/uuid"
)

// ElementType distinguishes conducting elements from insulation.
type ElementType string

const (
	TypeConduction ElementType = "conduction"
	TypeInsulation ElementType = "insulation"
)

// Section represents a contiguous primary-axis span of the winding
// window assigned to one pattern slot. Conduction sections carry one
// winding; insulation sections separate differing isolation sides.
// Margin tape shrinks the usable conducting length and is counted inside
// Length, never in addition to it.
type Section struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Type         ElementType `json:"type"`
	WindingIndex int         `json:"winding_index"` // -1 for insulation sections
	PatternSlot  int         `json:"pattern_slot"`  // slot in the replayed pattern, -1 for insulation
	Start        float64     `json:"start"`         // primary axis, mm
	Length       float64     `json:"length"`        // mm
	MarginStart  float64     `json:"margin_start"`  // mm of tape at the start edge
	MarginEnd    float64     `json:"margin_end"`    // mm of tape at the end edge
	TurnCount    int         `json:"turn_count"`    // turns assigned to this section
}

// End returns the section's primary-axis end coordinate.
func (s Section) End() float64 { return s.Start + s.Length }

// UsableLength returns the conducting length after margin tape.
func (s Section) UsableLength() float64 {
	u := s.Length - s.MarginStart - s.MarginEnd
	if u < 0 {
		return 0
	}
	return u
}

// Layer represents one insulated stack level within a section. For
// conduction layers Start and Thickness span the secondary (stacking)
// axis. For insulation layers they span the primary axis within the
// parent insulation section, one entry per tape wrap.
type Layer struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Type         ElementType `json:"type"`
	SectionIndex int         `json:"section_index"`
	WindingIndex int         `json:"winding_index"` // -1 for insulation layers
	Start        float64     `json:"start"`         // mm
	Thickness    float64     `json:"thickness"`     // mm
	TurnCount    int         `json:"turn_count"`
	// WireSpacing is the per-turn advance along the layer for the wire
	// dimension this layer was partitioned with.
	WireSpacing float64 `json:"wire_spacing,omitempty"`
	Material    string  `json:"material,omitempty"` // insulation layers only
}

// End returns the layer's end coordinate on its spanning axis.
func (l Layer) End() float64 { return l.Start + l.Thickness }

// Turn represents one placed loop of conductor. Primary and Secondary
// are the conductor center coordinates in window space. Length is
// derived from the bobbin's mean turn path at the turn's radial position
// whenever the position is set; it is never an independent input.
type Turn struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	WindingIndex int     `json:"winding_index"`
	SectionIndex int     `json:"section_index"`
	LayerIndex   int     `json:"layer_index"`
	Primary      float64 `json:"primary"`   // mm
	Secondary    float64 `json:"secondary"` // mm
	Length       float64 `json:"length"`    // mm, derived from position
}

// Coil ties a bobbin and its windings to the placement produced by one
// pipeline run. Sections, Layers and Turns are produced wholesale by
// each run and replaced on the next; they are never mutated
// incrementally. The Bobbin reference is shared and read-only.
type Coil struct {
	ID       string    `json:"id"`
	Bobbin   *Bobbin   `json:"bobbin"`
	Windings []Winding `json:"windings"`

	Sections []Section `json:"sections,omitempty"`
	Layers   []Layer   `json:"layers,omitempty"`
	Turns    []Turn    `json:"turns,omitempty"`
}

// NewCoil validates the windings and returns an empty coil ready to be
// wound. Winding indices are normalized to slice order.
func NewCoil(bobbin *Bobbin, windings []Winding) (*Coil, error) {
	if bobbin == nil {
		return nil, fmt.Errorf("coil requires a bobbin")
	}
	if len(windings) == 0 {
		return nil, fmt.Errorf("coil requires at least one winding")
	}
	for i := range windings {
		if windings[i].Turns <= 0 {
			return nil, fmt.Errorf("winding %q must have a positive turn count, got %d", windings[i].Name, windings[i].Turns)
		}
		windings[i].Index = i
		if windings[i].Isolation == "" {
			windings[i].Isolation = IsolationSideFromIndex(i)
		}
	}
	return &Coil{
		ID:       ShortID(),
		Bobbin:   bobbin,
		Windings: windings,
	}, nil
}

// ResetPlacement discards the placement from a previous run.
func (c *Coil) ResetPlacement() {
	c.Sections = nil
	c.Layers = nil
	c.Turns = nil
}

// ConductionSections returns the indices of conduction sections in
// pattern order.
func (c *Coil) ConductionSections() []int {
	var out []int
	for i, s := range c.Sections {
		if s.Type == TypeConduction {
			out = append(out, i)
		}
	}
	return out
}

// SectionsByWinding returns the indices of the conduction sections a
// winding occupies, in pattern order.
func (c *Coil) SectionsByWinding(winding int) []int {
	var out []int
	for i, s := range c.Sections {
		if s.Type == TypeConduction && s.WindingIndex == winding {
			out = append(out, i)
		}
	}
	return out
}

// LayersBySection returns the indices of the layers belonging to a
// section, in stacking order.
func (c *Coil) LayersBySection(section int) []int {
	var out []int
	for i, l := range c.Layers {
		if l.SectionIndex == section {
			out = append(out, i)
		}
	}
	return out
}

// LayersByWinding returns the indices of conduction layers carrying the
// given winding.
func (c *Coil) LayersByWinding(winding int) []int {
	var out []int
	for i, l := range c.Layers {
		if l.Type == TypeConduction && l.WindingIndex == winding {
			out = append(out, i)
		}
	}
	return out
}

// TurnsByLayer returns the indices of the turns placed in a layer.
func (c *Coil) TurnsByLayer(layer int) []int {
	var out []int
	for i, t := range c.Turns {
		if t.LayerIndex == layer {
			out = append(out, i)
		}
	}
	return out
}

// PlacedTurns counts the turns placed for a winding across all layers.
func (c *Coil) PlacedTurns(winding int) int {
	n := 0
	for _, t := range c.Turns {
		if t.WindingIndex == winding {
			n++
		}
	}
	return n
}

// TotalWireLength sums the derived lengths of a winding's turns in mm.
func (c *Coil) TotalWireLength(winding int) float64 {
	var total float64
	for _, t := range c.Turns {
		if t.WindingIndex == winding {
			total += t.Length
		}
	}
	return total
}

// FitReport is the result of the fit check: whether the layout stays
// inside the window and, when it does not, by how much it overflows on
// each axis. Capacity problems are reported here, never as errors, so a
// design search can score infeasible candidates.
type FitReport struct {
	Fits              bool    `json:"fits"`
	PrimaryOverflow   float64 `json:"primary_overflow"`   // mm past the section axis extent
	SecondaryOverflow float64 `json:"secondary_overflow"` // mm past the layer axis extent
}

// WindResult holds the full outcome of one pipeline run: the placed coil
// plus its fit report.
type WindResult struct {
	Coil *Coil     `json:"coil"`
	Fit  FitReport `json:"fit"`
}

// ShortID returns an 8-character random identifier.
func ShortID() string {
	return uuid.New().String()[:8]
}
