// Package export renders a wound coil layout into collaborator-facing
// artifacts: PDF reports, QR-coded winding labels, XLSX turn tables and
// DXF cross-sections.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/opencoil/coilwinder/internal/model"
)

// windingColor represents an RGB color for a winding's turns.
type windingColor struct {
	R, G, B int
}

// windingColors cycles per winding index in the layout diagram.
var windingColors = []windingColor{
	{R: 205, G: 97, B: 51},  // copper
	{R: 33, G: 150, B: 243}, // blue
	{R: 76, G: 175, B: 80},  // green
	{R: 156, G: 39, B: 176}, // purple
	{R: 255, G: 152, B: 0},  // orange
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document for a winding result: a window
// cross-section diagram with every section, layer and turn, followed by
// a summary page with per-winding statistics and the fit report.
func ExportPDF(path string, result model.WindResult, settings model.WindSettings) error {
	coil := result.Coil
	if coil == nil || len(coil.Sections) == 0 {
		return fmt.Errorf("no winding layout to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, coil, result.Fit, settings)

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the winding window cross-section: the primary
// axis runs horizontally, the secondary (stacking) axis vertically.
func renderLayoutPage(pdf *fpdf.Fpdf, coil *model.Coil, fit model.FitReport, settings model.WindSettings) {
	primary := coil.Bobbin.PrimaryLength(settings.Orientation)
	secondary := coil.Bobbin.SecondaryLength(settings.Orientation)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Winding window %s (%.1f x %.1f mm)", coil.Bobbin.Name, primary, secondary)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	status := "fits"
	if !fit.Fits {
		status = fmt.Sprintf("DOES NOT FIT (overflow %.2f / %.2f mm)", fit.PrimaryOverflow, fit.SecondaryOverflow)
	}
	stats := fmt.Sprintf("Windings: %d | Sections: %d | Layers: %d | Turns: %d | %s",
		len(coil.Windings), len(coil.Sections), len(coil.Layers), len(coil.Turns), status)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - 20

	scale := math.Min(drawWidth/primary, drawHeight/secondary)
	canvasW := primary * scale
	canvasH := secondary * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Window outline
	pdf.SetFillColor(250, 245, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Sections as primary-axis bands
	for _, sec := range coil.Sections {
		sx := offsetX + sec.Start*scale
		sw := sec.Length * scale
		if sec.Type == model.TypeInsulation {
			pdf.SetFillColor(255, 235, 180)
			pdf.SetDrawColor(180, 140, 60)
			pdf.SetLineWidth(0.2)
			pdf.Rect(sx, offsetY, sw, canvasH, "FD")
			continue
		}
		pdf.SetDrawColor(170, 170, 170)
		pdf.SetLineWidth(0.2)
		pdf.Rect(sx, offsetY, sw, canvasH, "D")

		// Margin tape zones at the section edges
		if sec.MarginStart > 0 {
			drawMarginZone(pdf, sx, offsetY, sec.MarginStart*scale, canvasH)
		}
		if sec.MarginEnd > 0 {
			drawMarginZone(pdf, sx+sw-sec.MarginEnd*scale, offsetY, sec.MarginEnd*scale, canvasH)
		}
	}

	// Turns as circles at their conductor centers
	for _, t := range coil.Turns {
		col := windingColors[t.WindingIndex%len(windingColors)]
		layer := coil.Layers[t.LayerIndex]
		r := layer.Thickness / 2 * scale
		cx := offsetX + t.Primary*scale
		cy := offsetY + t.Secondary*scale
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(60, 40, 20)
		pdf.SetLineWidth(0.15)
		pdf.Circle(cx, cy, r, "FD")
	}

	drawAxisAnnotations(pdf, primary, secondary, scale, offsetX, offsetY, canvasW, canvasH)
	drawWindingLegend(pdf, coil, offsetY+canvasH+5)
}

// drawMarginZone hatches a margin-tape area.
func drawMarginZone(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetFillColor(255, 210, 210)
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, w, h, "FD")
	drawHatchPattern(pdf, x, y, w, h)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark
// non-conducting zones.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawAxisAnnotations adds the window extents outside the rectangle.
func drawAxisAnnotations(pdf *fpdf.Fpdf, primary, secondary, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.1f mm", primary)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.1f mm", secondary)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawWindingLegend renders a compact per-winding legend below the diagram.
func drawWindingLegend(pdf *fpdf.Fpdf, coil *model.Coil, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Windings:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, w := range coil.Windings {
		col := windingColors[w.Index%len(windingColors)]
		label := fmt.Sprintf("%s (%d turns, %s)", w.Name, w.Turns, w.Wire.Name)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws per-winding statistics, the fit report and the
// settings used.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.WindResult, settings model.WindSettings) {
	coil := result.Coil

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Winding Placement Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	// Winding table
	colWidths := []float64{55, 25, 55, 25, 25, 40}
	headers := []string{"Winding", "Turns", "Wire", "Sections", "Layers", "Wire Length"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, w := range coil.Windings {
		xPos = marginLeft
		rowData := []string{
			w.Name,
			fmt.Sprintf("%d", w.Turns),
			w.Wire.Name,
			fmt.Sprintf("%d", len(coil.SectionsByWinding(i))),
			fmt.Sprintf("%d", len(coil.LayersByWinding(i))),
			fmt.Sprintf("%.0f mm", coil.TotalWireLength(i)),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Fit warning
	if !result.Fit.Fits {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Layout exceeds the winding window", "", 0, "L", false, 0, "")
		y += 7

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(marginLeft+5, y)
		text := fmt.Sprintf("Overflow: %.3f mm along the section axis, %.3f mm along the layer axis",
			result.Fit.PrimaryOverflow, result.Fit.SecondaryOverflow)
		pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
		y += 5
	}

	// Settings summary
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Winding Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Orientation", string(settings.Orientation)},
		{"Section Alignment", string(settings.SectionAlignment)},
		{"Turn Alignment", string(settings.TurnAlignment)},
		{"Insulation Thickness", fmt.Sprintf("%.2f mm", settings.InsulationThickness)},
		{"Insulation Standard", settings.InsulationStandard},
		{"Compaction", fmt.Sprintf("%t", settings.DelimitAndCompact)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by coilwinder", "", 0, "C", false, 0, "")
}
