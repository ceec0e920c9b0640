package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencoil/coilwinder/internal/model"
)

// testWire advances exactly 1 mm per turn, which keeps expected
// coordinates readable.
func testWire() model.Wire {
	return model.NewRoundWire("1.00 mm test", 0.90, 1.0)
}

func testBobbin(primary, secondary float64) *model.Bobbin {
	// Contiguous orientation: primary = axial height, secondary = radial width.
	return model.NewBobbin("test", secondary, primary, 8.0, 1.0)
}

func testSettings() model.WindSettings {
	s := model.DefaultSettings()
	// Simplify for testing: no compaction, no retry, no insulation between sides.
	s.DelimitAndCompact = false
	s.TryRewind = false
	s.InsulationThickness = 0
	return s
}

func newTestCoil(t *testing.T, bobbin *model.Bobbin, turnCounts ...int) *model.Coil {
	t.Helper()
	windings := make([]model.Winding, len(turnCounts))
	for i, n := range turnCounts {
		windings[i] = model.NewWinding(string(rune('A'+i)), i, n, testWire())
	}
	coil, err := model.NewCoil(bobbin, windings)
	require.NoError(t, err)
	return coil
}

func TestWindBySections_SingleWinding(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(20, 5), 10)

	require.NoError(t, w.WindBySections(coil, 1, nil, model.Pattern{0}, nil))

	require.Len(t, coil.Sections, 1)
	sec := coil.Sections[0]
	assert.Equal(t, model.TypeConduction, sec.Type)
	assert.Equal(t, 0, sec.WindingIndex)
	assert.Equal(t, 0.0, sec.Start)
	assert.InDelta(t, 20.0, sec.Length, 1e-9)
	assert.Equal(t, 10, sec.TurnCount)
}

func TestWindBySections_InterleavedPattern(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(20, 5), 10, 6)

	require.NoError(t, w.WindBySections(coil, 2, nil, model.Pattern{0, 1}, nil))

	// Pattern [0,1] at 2 repetitions: four sections in order 0-1-0-1.
	require.Len(t, coil.Sections, 4)
	for i, want := range []int{0, 1, 0, 1} {
		assert.Equal(t, want, coil.Sections[i].WindingIndex, "section %d", i)
	}

	// Default proportions split the window evenly; each occurrence gets
	// its winding's share divided by the repetition count.
	for _, sec := range coil.Sections {
		assert.InDelta(t, 5.0, sec.Length, 1e-9)
	}

	// Sections tile the window without gaps.
	cursor := 0.0
	for _, sec := range coil.Sections {
		assert.InDelta(t, cursor, sec.Start, 1e-9)
		cursor = sec.End()
	}
	assert.InDelta(t, 20.0, cursor, 1e-9)
}

func TestWindBySections_TurnRemainderGoesToEarliestSections(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(30, 5), 17)

	require.NoError(t, w.WindBySections(coil, 3, nil, model.Pattern{0}, nil))

	require.Len(t, coil.Sections, 3)
	counts := []int{coil.Sections[0].TurnCount, coil.Sections[1].TurnCount, coil.Sections[2].TurnCount}
	assert.Equal(t, []int{6, 6, 5}, counts)
}

func TestWindBySections_ExplicitProportions(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(20, 5), 10, 6)

	props := map[int]float64{0: 0.75}
	require.NoError(t, w.WindBySections(coil, 1, props, model.Pattern{0, 1}, nil))

	require.Len(t, coil.Sections, 2)
	assert.InDelta(t, 15.0, coil.Sections[0].Length, 1e-9)
	// The unassigned winding receives the remainder.
	assert.InDelta(t, 5.0, coil.Sections[1].Length, 1e-9)
}

func TestWindBySections_ProportionOverflow(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(20, 5), 10, 6)

	props := map[int]float64{0: 0.8, 1: 0.4}
	err := w.WindBySections(coil, 1, props, model.Pattern{0, 1}, nil)

	var overflow *model.ProportionOverflowError
	require.ErrorAs(t, err, &overflow)
	assert.InDelta(t, 1.2, overflow.Total, 1e-9)
}

func TestWindBySections_ProportionsSummingToOneExactly(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(20, 5), 10, 6)

	props := map[int]float64{0: 0.7, 1: 0.3}
	assert.NoError(t, w.WindBySections(coil, 1, props, model.Pattern{0, 1}, nil))
}

func TestWindBySections_NegativeProportion(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(20, 5), 10, 6)

	err := w.WindBySections(coil, 1, map[int]float64{0: -0.1}, model.Pattern{0, 1}, nil)
	assert.Error(t, err)
}

func TestWindBySections_InsulationBetweenIsolationSides(t *testing.T) {
	s := testSettings()
	s.InsulationThickness = 0.5
	w := New(s)
	coil := newTestCoil(t, testBobbin(20, 5), 10, 6)

	require.NoError(t, w.WindBySections(coil, 2, nil, model.Pattern{0, 1}, nil))

	// 0-1-0-1 with differing sides: insulation at every boundary.
	types := make([]model.ElementType, len(coil.Sections))
	for i, sec := range coil.Sections {
		types[i] = sec.Type
	}
	assert.Equal(t, []model.ElementType{
		model.TypeConduction, model.TypeInsulation,
		model.TypeConduction, model.TypeInsulation,
		model.TypeConduction, model.TypeInsulation,
		model.TypeConduction,
	}, types)

	for _, si := range []int{1, 3, 5} {
		assert.Equal(t, -1, coil.Sections[si].WindingIndex)
		assert.InDelta(t, 0.5, coil.Sections[si].Length, 1e-9)
	}
}

func TestWindBySections_TripleInsulatedWireReplacesInsulation(t *testing.T) {
	s := testSettings()
	s.InsulationThickness = 0.5
	w := New(s)

	wire := testWire()
	wire.Grade = 3
	coil, err := model.NewCoil(testBobbin(20, 5), []model.Winding{
		model.NewWinding("A", 0, 10, wire),
		model.NewWinding("B", 1, 6, wire),
	})
	require.NoError(t, err)

	require.NoError(t, w.WindBySections(coil, 2, nil, model.Pattern{0, 1}, nil))

	// The wire build satisfies the isolation requirement on its own, so
	// the boundaries between sides carry no insulation sections.
	require.Len(t, coil.Sections, 4)
	for i, sec := range coil.Sections {
		assert.Equal(t, model.TypeConduction, sec.Type, "section %d", i)
	}
	assert.InDelta(t, 20.0, coil.Sections[3].End(), 1e-9)
}

func TestWindBySections_TripleInsulatedWireDisabledBySetting(t *testing.T) {
	s := testSettings()
	s.InsulationThickness = 0.5
	s.AllowInsulatedWire = false
	w := New(s)

	wire := testWire()
	wire.Grade = 3
	coil, err := model.NewCoil(testBobbin(20, 5), []model.Winding{
		model.NewWinding("A", 0, 10, wire),
		model.NewWinding("B", 1, 6, wire),
	})
	require.NoError(t, err)

	require.NoError(t, w.WindBySections(coil, 2, nil, model.Pattern{0, 1}, nil))

	// With the setting off the wire build is ignored and every boundary
	// between sides gets its insulation section back.
	require.Len(t, coil.Sections, 7)
	for _, si := range []int{1, 3, 5} {
		assert.Equal(t, model.TypeInsulation, coil.Sections[si].Type, "section %d", si)
	}
}

func TestWindBySections_MixedWireGradesKeepInsulation(t *testing.T) {
	s := testSettings()
	s.InsulationThickness = 0.5
	w := New(s)

	triple := testWire()
	triple.Grade = 3
	coil, err := model.NewCoil(testBobbin(20, 5), []model.Winding{
		model.NewWinding("A", 0, 10, triple),
		model.NewWinding("B", 1, 6, testWire()), // grade 1
	})
	require.NoError(t, err)

	require.NoError(t, w.WindBySections(coil, 1, nil, model.Pattern{0, 1}, nil))

	// One grade-1 wire at the boundary keeps the insulation section.
	require.Len(t, coil.Sections, 3)
	assert.Equal(t, model.TypeInsulation, coil.Sections[1].Type)
}

func TestWindBySections_NoInsulationWithinOneSide(t *testing.T) {
	s := testSettings()
	s.InsulationThickness = 0.5
	w := New(s)
	// Both windings on the primary side.
	bobbin := testBobbin(20, 5)
	wireA := testWire()
	windings := []model.Winding{
		{Name: "A", Turns: 10, Wire: wireA, Isolation: model.IsolationPrimary},
		{Name: "B", Turns: 6, Wire: wireA, Isolation: model.IsolationPrimary},
	}
	coil, err := model.NewCoil(bobbin, windings)
	require.NoError(t, err)

	require.NoError(t, w.WindBySections(coil, 1, nil, model.Pattern{0, 1}, nil))
	assert.Len(t, coil.Sections, 2)
}

func TestWindBySections_MarginTape(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(20, 5), 10, 6)

	margins := [][2]float64{{1.5, 1.5}, {0, 0}}
	require.NoError(t, w.WindBySections(coil, 2, nil, model.Pattern{0, 1}, margins))

	// The margin pair follows the pattern slot across repetitions.
	assert.Equal(t, 1.5, coil.Sections[0].MarginStart)
	assert.Equal(t, 0.0, coil.Sections[1].MarginStart)
	assert.Equal(t, 1.5, coil.Sections[2].MarginStart)
	assert.InDelta(t, 2.0, coil.Sections[0].UsableLength(), 1e-9)
}

func TestWindBySections_MarginTapeDisabled(t *testing.T) {
	s := testSettings()
	s.AllowMarginTape = false
	w := New(s)
	coil := newTestCoil(t, testBobbin(20, 5), 10)

	require.NoError(t, w.WindBySections(coil, 1, nil, model.Pattern{0}, [][2]float64{{2, 2}}))
	assert.Equal(t, 0.0, coil.Sections[0].MarginStart)
	assert.Equal(t, 0.0, coil.Sections[0].MarginEnd)
}

func TestWindBySections_InputErrors(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(20, 5), 10, 6)

	assert.Error(t, w.WindBySections(coil, 0, nil, model.Pattern{0}, nil))

	var mismatch *model.PatternMismatchError
	err := w.WindBySections(coil, 1, nil, model.Pattern{0, 2}, nil)
	require.ErrorAs(t, err, &mismatch)

	err = w.WindBySections(coil, 1, nil, model.Pattern{0, 1}, [][2]float64{{1, 1}})
	assert.Error(t, err, "margin pair count must match the pattern")
}
