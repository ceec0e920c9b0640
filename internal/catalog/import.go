package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/opencoil/coilwinder/internal/model"
)

// ImportResult holds the results of a wire table import.
type ImportResult struct {
	Wires    []model.Wire
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name       int
	Type       int
	Conducting int
	Outer      int
	Height     int
	Strands    int
	Grade      int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":       {"name", "wire", "label", "designation", "size"},
	"type":       {"type", "construction", "kind"},
	"conducting": {"conducting", "conducting diameter", "conductor", "bare", "bare diameter", "diameter", "thickness"},
	"outer":      {"outer", "outer diameter", "od", "overall", "coated", "width"},
	"height":     {"height", "foil height", "foil width", "h"},
	"strands":    {"strands", "strand count", "n", "filaments"},
	"grade":      {"grade", "build", "insulation grade"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter by trying
// comma, semicolon, tab, and pipe and scoring column-count consistency.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// matches case-insensitively against known aliases for each role.
// Returns a positional mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name:       -1,
		Type:       -1,
		Conducting: -1,
		Outer:      -1,
		Height:     -1,
		Strands:    -1,
		Grade:      -1,
	}

	set := func(target *int, i int) {
		if *target == -1 {
			*target = i
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "name":
					set(&mapping.Name, i)
				case "type":
					set(&mapping.Type, i)
				case "conducting":
					set(&mapping.Conducting, i)
				case "outer":
					set(&mapping.Outer, i)
				case "height":
					set(&mapping.Height, i)
				case "strands":
					set(&mapping.Strands, i)
				case "grade":
					set(&mapping.Grade, i)
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: Name, Type, Conducting, Outer
		return ColumnMapping{
			Name:       0,
			Type:       1,
			Conducting: 2,
			Outer:      3,
			Height:     4,
			Strands:    5,
			Grade:      6,
		}, false
	}

	return mapping, true
}

// parseWireType converts a type column value to a model.WireType.
func parseWireType(s string) (model.WireType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "round", "solid":
		return model.WireRound, true
	case "litz", "stranded":
		return model.WireLitz, true
	case "rectangular", "rect", "flat":
		return model.WireRectangular, true
	case "foil", "strip":
		return model.WireFoil, true
	default:
		return model.WireRound, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Wire from a row using the given column mapping.
// Returns the wire, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, wireCount int) (model.Wire, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("wire %d", wireCount+1)
	}

	var warning string
	wireType, ok := parseWireType(getCell(row, mapping.Type))
	if !ok {
		warning = fmt.Sprintf("%s: Unknown wire type '%s', defaulting to round", rowLabel, getCell(row, mapping.Type))
	}

	conductingStr := getCell(row, mapping.Conducting)
	if conductingStr == "" {
		return model.Wire{}, fmt.Sprintf("%s: Missing conducting dimension", rowLabel), ""
	}
	conducting, err := strconv.ParseFloat(conductingStr, 64)
	if err != nil {
		return model.Wire{}, fmt.Sprintf("%s: Invalid conducting dimension '%s'", rowLabel, conductingStr), ""
	}

	outer := conducting
	if outerStr := getCell(row, mapping.Outer); outerStr != "" {
		outer, err = strconv.ParseFloat(outerStr, 64)
		if err != nil {
			return model.Wire{}, fmt.Sprintf("%s: Invalid outer dimension '%s'", rowLabel, outerStr), ""
		}
	}

	if conducting <= 0 || outer <= 0 {
		return model.Wire{}, fmt.Sprintf("%s: Dimensions must be positive", rowLabel), ""
	}

	var wire model.Wire
	switch wireType {
	case model.WireFoil:
		height := 10.0
		if hStr := getCell(row, mapping.Height); hStr != "" {
			if height, err = strconv.ParseFloat(hStr, 64); err != nil {
				return model.Wire{}, fmt.Sprintf("%s: Invalid foil height '%s'", rowLabel, hStr), warning
			}
		}
		wire = model.NewFoilWire(name, conducting, height)
	case model.WireRectangular:
		height := conducting
		if hStr := getCell(row, mapping.Height); hStr != "" {
			if height, err = strconv.ParseFloat(hStr, 64); err != nil {
				return model.Wire{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, hStr), warning
			}
		}
		wire = model.Wire{
			Name:             name,
			Type:             model.WireRectangular,
			ConductingWidth:  model.Dim(conducting),
			ConductingHeight: model.Dim(height),
			OuterWidth:       model.Dim(outer),
			OuterHeight:      model.Dim(height + (outer - conducting)),
		}
	default:
		wire = model.NewRoundWire(name, conducting, outer)
		wire.Type = wireType
	}

	if strandsStr := getCell(row, mapping.Strands); strandsStr != "" {
		if strands, err := strconv.Atoi(strandsStr); err == nil {
			wire.Strands = strands
		}
	}
	if gradeStr := getCell(row, mapping.Grade); gradeStr != "" {
		if grade, err := strconv.Atoi(gradeStr); err == nil {
			wire.Grade = grade
		}
	}

	return wire, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports wires from a CSV file. It automatically detects the
// delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports wires from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports wires from an Excel (.xlsx) file. Reads the first
// sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Conducting == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Conducting dimension")
			return result
		}
	} else if len(rows[0]) >= 3 {
		// No recognized header: if the first data column is not numeric,
		// treat the row as an unrecognized header and keep the
		// positional mapping.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][2]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		wire, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Wires))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Wires = append(result.Wires, wire)
	}

	return result
}
