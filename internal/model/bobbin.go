package model

import "math"

// ColumnShape represents the cross-section of the core column the bobbin
// sits on.
type ColumnShape string

const (
	ColumnRound       ColumnShape = "round"
	ColumnRectangular ColumnShape = "rectangular"
)

// Bobbin represents the winding window geometry. The window is described
// by its radial width (distance from the bobbin wall outwards) and its
// axial height (along the column), both in mm. A Bobbin is shared
// read-only between coils; nothing in the pipeline mutates it.
type Bobbin struct {
	Name          string      `json:"name" toml:"name"`
	WindowWidth   float64     `json:"window_width" toml:"window_width"`   // radial, mm
	WindowHeight  float64     `json:"window_height" toml:"window_height"` // axial, mm
	ColumnShape   ColumnShape `json:"column_shape" toml:"column_shape"`
	ColumnWidth   float64     `json:"column_width" toml:"column_width"` // diameter for round columns, mm
	ColumnDepth   float64     `json:"column_depth,omitempty" toml:"column_depth"`
	WallThickness float64     `json:"wall_thickness" toml:"wall_thickness"` // mm
}

// NewBobbin returns a bobbin with a round column.
func NewBobbin(name string, windowWidth, windowHeight, columnDiameter, wall float64) *Bobbin {
	return &Bobbin{
		Name:          name,
		WindowWidth:   windowWidth,
		WindowHeight:  windowHeight,
		ColumnShape:   ColumnRound,
		ColumnWidth:   columnDiameter,
		WallThickness: wall,
	}
}

// MeanTurnLength returns the length in mm of one turn whose conductor
// center sits at the given radial distance from the bobbin wall. Turn
// length is always derived from position through this function, never
// stored independently.
func (b *Bobbin) MeanTurnLength(radial float64) float64 {
	switch b.ColumnShape {
	case ColumnRectangular:
		// Straight runs along the column faces plus rounded corners.
		r := b.WallThickness + radial
		return 2*(b.ColumnWidth+b.ColumnDepth) + 2*math.Pi*r
	default:
		// Round column: circumference at the conductor center.
		return math.Pi * (b.ColumnWidth + 2*(b.WallThickness+radial))
	}
}

// PrimaryLength returns the window extent along the section axis for the
// given winding orientation.
func (b *Bobbin) PrimaryLength(o WindingOrientation) float64 {
	if o == OrientationOverlapping {
		return b.WindowWidth
	}
	return b.WindowHeight
}

// SecondaryLength returns the window extent along the layer stacking
// axis for the given winding orientation.
func (b *Bobbin) SecondaryLength(o WindingOrientation) float64 {
	if o == OrientationOverlapping {
		return b.WindowHeight
	}
	return b.WindowWidth
}
