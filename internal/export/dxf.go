package export

import (
	"fmt"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/opencoil/coilwinder/internal/model"
)

// ExportDXF writes the window cross-section as a DXF drawing for CAD:
// the window outline and section boundaries on one layer, each
// winding's turn circles on its own layer. Coordinates are in mm with
// the primary axis along X.
func ExportDXF(path string, result model.WindResult, settings model.WindSettings) error {
	coil := result.Coil
	if coil == nil || len(coil.Sections) == 0 {
		return fmt.Errorf("no winding layout to export")
	}

	primary := coil.Bobbin.PrimaryLength(settings.Orientation)
	secondary := coil.Bobbin.SecondaryLength(settings.Orientation)

	d := dxf.NewDrawing()

	if _, err := d.AddLayer("WINDOW", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return err
	}
	drawRect(d, 0, 0, primary, secondary)

	if _, err := d.AddLayer("SECTIONS", dxfcolor.Cyan, table.LT_DASHDOT, true); err != nil {
		return err
	}
	for _, s := range coil.Sections {
		d.Line(s.Start, 0, 0, s.Start, secondary, 0)
		d.Line(s.End(), 0, 0, s.End(), secondary, 0)
	}

	colors := []dxfcolor.ColorNumber{
		dxfcolor.Red, dxfcolor.Yellow, dxfcolor.Green, dxfcolor.Magenta, dxfcolor.Blue,
	}
	for i := range coil.Windings {
		layerName := fmt.Sprintf("WINDING_%d", i)
		if _, err := d.AddLayer(layerName, colors[i%len(colors)], table.LT_CONTINUOUS, true); err != nil {
			return err
		}
		for _, ti := range turnsOfWinding(coil, i) {
			t := coil.Turns[ti]
			r := coil.Layers[t.LayerIndex].Thickness / 2
			d.Circle(t.Primary, t.Secondary, 0, r)
		}
	}

	return d.SaveAs(path)
}

// drawRect draws an axis-aligned rectangle as four lines.
func drawRect(d *drawing.Drawing, x, y, w, h float64) {
	d.Line(x, y, 0, x+w, y, 0)
	d.Line(x+w, y, 0, x+w, y+h, 0)
	d.Line(x+w, y+h, 0, x, y+h, 0)
	d.Line(x, y+h, 0, x, y, 0)
}

// turnsOfWinding returns the turn indices belonging to a winding.
func turnsOfWinding(coil *model.Coil, winding int) []int {
	var out []int
	for i, t := range coil.Turns {
		if t.WindingIndex == winding {
			out = append(out, i)
		}
	}
	return out
}
