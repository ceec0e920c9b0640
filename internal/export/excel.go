package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/opencoil/coilwinder/internal/model"
)

// ExportExcel writes the full turn table to an XLSX workbook: one row
// per placed turn with its coordinates and derived length, plus a
// Sections sheet with the primary-axis partition. Loss and capacitance
// tooling downstream reads these tables directly.
func ExportExcel(path string, result model.WindResult) error {
	coil := result.Coil
	if coil == nil || len(coil.Turns) == 0 {
		return fmt.Errorf("no placed turns to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const turnSheet = "Turns"
	if err := f.SetSheetName("Sheet1", turnSheet); err != nil {
		return err
	}

	turnHeaders := []string{"Turn", "Winding", "Section", "Layer", "Primary (mm)", "Secondary (mm)", "Length (mm)"}
	for col, h := range turnHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(turnSheet, cell, h); err != nil {
			return err
		}
	}

	for i, t := range coil.Turns {
		values := []interface{}{
			t.Name,
			coil.Windings[t.WindingIndex].Name,
			coil.Sections[t.SectionIndex].Name,
			coil.Layers[t.LayerIndex].Name,
			t.Primary,
			t.Secondary,
			t.Length,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(turnSheet, cell, v); err != nil {
				return err
			}
		}
	}

	const sectionSheet = "Sections"
	if _, err := f.NewSheet(sectionSheet); err != nil {
		return err
	}

	sectionHeaders := []string{"Section", "Type", "Winding", "Start (mm)", "Length (mm)", "Margin Start (mm)", "Margin End (mm)", "Turns"}
	for col, h := range sectionHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sectionSheet, cell, h); err != nil {
			return err
		}
	}

	for i, s := range coil.Sections {
		windingName := ""
		if s.WindingIndex >= 0 {
			windingName = coil.Windings[s.WindingIndex].Name
		}
		values := []interface{}{
			s.Name,
			string(s.Type),
			windingName,
			s.Start,
			s.Length,
			s.MarginStart,
			s.MarginEnd,
			s.TurnCount,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sectionSheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
