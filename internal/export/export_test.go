package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/opencoil/coilwinder/internal/engine"
	"github.com/opencoil/coilwinder/internal/model"
)

// testResult winds a small two-winding coil to exercise every exporter
// against a realistic layout, including an insulation section.
func testResult(t *testing.T) (model.WindResult, model.WindSettings) {
	t.Helper()

	settings := model.DefaultSettings()
	settings.InsulationThickness = 0.2

	bobbin := model.NewBobbin("EF25", 4.7, 15.3, 7.5, 0.8)
	wire := model.NewRoundWire("0.50 mm", 0.50, 0.540)
	coil, err := model.NewCoil(bobbin, []model.Winding{
		model.NewWinding("primary", 0, 12, wire),
		model.NewWinding("secondary", 1, 5, wire),
	})
	require.NoError(t, err)

	w := engine.New(settings)
	result, err := w.Wind(coil, 1, nil, model.Pattern{0, 1}, [][2]float64{{0.5, 0.5}, {0, 0}})
	require.NoError(t, err)
	require.NotEmpty(t, result.Coil.Turns)
	return result, settings
}

func TestExportPDF(t *testing.T) {
	result, settings := testResult(t)
	path := filepath.Join(t.TempDir(), "report.pdf")

	require.NoError(t, ExportPDF(path, result, settings))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000), "report should not be empty")
}

func TestExportPDF_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	err := ExportPDF(path, model.WindResult{}, model.DefaultSettings())
	assert.Error(t, err)
}

func TestExportLabels(t *testing.T) {
	result, _ := testResult(t)
	path := filepath.Join(t.TempDir(), "labels.pdf")

	require.NoError(t, ExportLabels(path, result))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000))
}

func TestCollectLabelInfos(t *testing.T) {
	result, _ := testResult(t)

	labels := CollectLabelInfos(result)
	require.Len(t, labels, 2)

	assert.Equal(t, "primary", labels[0].WindingName)
	assert.Equal(t, 12, labels[0].Turns)
	assert.Equal(t, "0.50 mm", labels[0].Wire)
	assert.Equal(t, "primary", labels[0].Isolation)
	assert.Greater(t, labels[0].WireLength, 0.0)
	assert.Equal(t, result.Coil.ID, labels[0].CoilID)

	assert.Equal(t, "secondary", labels[1].WindingName)
	assert.Equal(t, 5, labels[1].Turns)
}

func TestCollectLabelInfos_NilCoil(t *testing.T) {
	assert.Nil(t, CollectLabelInfos(model.WindResult{}))
}

func TestExportExcel(t *testing.T) {
	result, _ := testResult(t)
	path := filepath.Join(t.TempDir(), "turns.xlsx")

	require.NoError(t, ExportExcel(path, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Turns")
	require.NoError(t, err)
	// Header plus one row per turn.
	assert.Len(t, rows, len(result.Coil.Turns)+1)
	assert.Equal(t, "Turn", rows[0][0])

	sections, err := f.GetRows("Sections")
	require.NoError(t, err)
	assert.Len(t, sections, len(result.Coil.Sections)+1)
}

func TestExportExcel_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turns.xlsx")
	err := ExportExcel(path, model.WindResult{})
	assert.Error(t, err)
}

func TestExportDXF(t *testing.T) {
	result, settings := testResult(t)
	path := filepath.Join(t.TempDir(), "layout.dxf")

	require.NoError(t, ExportDXF(path, result, settings))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "WINDOW")
	assert.Contains(t, content, "SECTIONS")
	assert.Contains(t, content, "WINDING_0")
	assert.Contains(t, content, "WINDING_1")
}

func TestExportDXF_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")
	err := ExportDXF(path, model.WindResult{}, model.DefaultSettings())
	assert.Error(t, err)
}
