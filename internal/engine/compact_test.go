package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencoil/coilwinder/internal/model"
)

func windAll(t *testing.T, w *Winder, coil *model.Coil, repetitions int, pattern model.Pattern) {
	t.Helper()
	require.NoError(t, w.WindBySections(coil, repetitions, nil, pattern, nil))
	require.NoError(t, w.WindByLayers(coil))
	require.NoError(t, w.WindByTurns(coil))
}

func TestCompact_ShrinksSectionsToTurnExtent(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(20, 5), 6)
	windAll(t, w, coil, 1, model.Pattern{0})
	require.InDelta(t, 20.0, coil.Sections[0].Length, 1e-9)

	require.NoError(t, w.Compact(coil))

	// 6 turns at 1 mm spacing need 6 mm.
	assert.InDelta(t, 6.0, coil.Sections[0].Length, 1e-9)
	assert.Equal(t, 6, coil.Sections[0].TurnCount)
}

func TestCompact_RemovesInterSectionGaps(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(20, 5), 6, 4)
	windAll(t, w, coil, 1, model.Pattern{0, 1})

	require.NoError(t, w.Compact(coil))

	// Sections shrink to 6 and 4 mm and sit back to back at the origin.
	assert.InDelta(t, 0.0, coil.Sections[0].Start, 1e-9)
	assert.InDelta(t, 6.0, coil.Sections[0].Length, 1e-9)
	assert.InDelta(t, 6.0, coil.Sections[1].Start, 1e-9)
	assert.InDelta(t, 4.0, coil.Sections[1].Length, 1e-9)
}

func TestCompact_Idempotent(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(20, 5), 13, 7)
	windAll(t, w, coil, 2, model.Pattern{0, 1})

	require.NoError(t, w.Compact(coil))
	sections := append([]model.Section(nil), coil.Sections...)
	layers := append([]model.Layer(nil), coil.Layers...)
	turns := append([]model.Turn(nil), coil.Turns...)

	require.NoError(t, w.Compact(coil))

	assert.Equal(t, sections, coil.Sections)
	assert.Equal(t, layers, coil.Layers)
	assert.Equal(t, turns, coil.Turns)
}

func TestCompact_PreservesTurnIdentityAndCounts(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(20, 5), 13, 7)
	windAll(t, w, coil, 2, model.Pattern{0, 1})

	ids := make([]string, len(coil.Turns))
	for i, turn := range coil.Turns {
		ids[i] = turn.ID
	}

	require.NoError(t, w.Compact(coil))

	require.Len(t, coil.Turns, 20)
	for i, turn := range coil.Turns {
		assert.Equal(t, ids[i], turn.ID, "turn %d changed identity", i)
	}
	assert.Equal(t, 13, coil.PlacedTurns(0))
	assert.Equal(t, 7, coil.PlacedTurns(1))
}

func TestCompact_SectionAlignmentOuter(t *testing.T) {
	s := testSettings()
	s.SectionAlignment = model.AlignOuterOrBottom
	w := New(s)
	coil := newTestCoil(t, testBobbin(20, 5), 6)
	windAll(t, w, coil, 1, model.Pattern{0})

	require.NoError(t, w.Compact(coil))

	// 14 mm slack seats the section against the far edge.
	assert.InDelta(t, 14.0, coil.Sections[0].Start, 1e-9)
	assert.InDelta(t, 20.0, coil.Sections[0].End(), 1e-9)
}

func TestCompact_SectionAlignmentCentered(t *testing.T) {
	s := testSettings()
	s.SectionAlignment = model.AlignCentered
	w := New(s)
	coil := newTestCoil(t, testBobbin(20, 5), 6)
	windAll(t, w, coil, 1, model.Pattern{0})

	require.NoError(t, w.Compact(coil))

	assert.InDelta(t, 7.0, coil.Sections[0].Start, 1e-9)
}

func TestCompact_SectionAlignmentSpread(t *testing.T) {
	s := testSettings()
	s.SectionAlignment = model.AlignSpread
	w := New(s)
	coil := newTestCoil(t, testBobbin(20, 5), 6, 4)
	windAll(t, w, coil, 1, model.Pattern{0, 1})

	require.NoError(t, w.Compact(coil))

	// 10 mm slack opens as one gap between the two sections.
	assert.InDelta(t, 0.0, coil.Sections[0].Start, 1e-9)
	assert.InDelta(t, 16.0, coil.Sections[1].Start, 1e-9)
	assert.InDelta(t, 20.0, coil.Sections[1].End(), 1e-9)
}

func TestCompact_FillSectionsWithMarginTape(t *testing.T) {
	s := testSettings()
	s.FillSectionsWithMarginTape = true
	w := New(s)
	coil := newTestCoil(t, testBobbin(20, 5), 6)
	windAll(t, w, coil, 1, model.Pattern{0})

	require.NoError(t, w.Compact(coil))

	// The section keeps its length; the 14 mm slack becomes margin tape.
	sec := coil.Sections[0]
	assert.InDelta(t, 20.0, sec.Length, 1e-9)
	assert.InDelta(t, 7.0, sec.MarginStart, 1e-9)
	assert.InDelta(t, 7.0, sec.MarginEnd, 1e-9)
	assert.InDelta(t, 6.0, sec.UsableLength(), 1e-9)
}

func TestCompact_TurnsFollowTheirSections(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(20, 5), 6, 4)
	windAll(t, w, coil, 1, model.Pattern{0, 1})

	require.NoError(t, w.Compact(coil))

	for _, turn := range coil.Turns {
		sec := coil.Sections[turn.SectionIndex]
		assert.GreaterOrEqual(t, turn.Primary, sec.Start-1e-9)
		assert.LessOrEqual(t, turn.Primary, sec.End()+1e-9)
		// Lengths re-derived from the new positions.
		assert.InDelta(t, coil.Bobbin.MeanTurnLength(turn.Secondary), turn.Length, 1e-9)
	}
}

func TestCompact_InsulationWrapsFollow(t *testing.T) {
	s := testSettings()
	s.InsulationThickness = 0.5
	w := New(s)
	coil := newTestCoil(t, testBobbin(20, 5), 6, 4)
	windAll(t, w, coil, 1, model.Pattern{0, 1})

	require.NoError(t, w.Compact(coil))

	// The insulation section sits between the shrunk conduction sections
	// and its wrap still spans it.
	require.Len(t, coil.Sections, 3)
	ins := coil.Sections[1]
	require.Equal(t, model.TypeInsulation, ins.Type)
	assert.InDelta(t, 6.0, ins.Start, 1e-9)

	lis := coil.LayersBySection(1)
	require.Len(t, lis, 1)
	assert.InDelta(t, ins.Start, coil.Layers[lis[0]].Start, 1e-9)
	assert.InDelta(t, ins.Length, coil.Layers[lis[0]].Thickness, 1e-9)
}

func TestCompact_RequiresSections(t *testing.T) {
	w := New(testSettings())
	coil := newTestCoil(t, testBobbin(20, 5), 6)
	assert.Error(t, w.Compact(coil))
}
