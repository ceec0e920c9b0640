package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStandard(t *testing.T) {
	s := GetStandard("IEC 61558-1")
	assert.Equal(t, "IEC 61558-1", s.Name)
	assert.Equal(t, 0.3, s.MinThickness)
	assert.Equal(t, 3, s.MinLayers)
}

func TestGetStandard_UnknownFallsBackToBasic(t *testing.T) {
	s := GetStandard("no such standard")
	assert.Equal(t, "Basic", s.Name)
	assert.Equal(t, 0.0, s.MinThickness)
}

func TestGetStandardNames(t *testing.T) {
	names := GetStandardNames()
	assert.Len(t, names, len(InsulationStandards))
	assert.Contains(t, names, "Basic")
	assert.Contains(t, names, "IEC 60664-1")
}

func TestInsulationSpecResolve_EmptyUsesStandardMinimums(t *testing.T) {
	spec := InsulationSpec{Standard: "IEC 60664-1"}

	thickness, layers, err := spec.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 0.4, thickness)
	assert.Equal(t, 3, layers)
}

func TestInsulationSpecResolve_RaisesToMinimums(t *testing.T) {
	spec := InsulationSpec{
		Thickness: Dim(0.1),
		Layers:    1,
		Standard:  "IEC 61558-1",
	}

	thickness, layers, err := spec.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 0.3, thickness)
	assert.Equal(t, 3, layers)
}

func TestInsulationSpecResolve_KeepsValuesAboveMinimums(t *testing.T) {
	spec := InsulationSpec{
		Thickness: Dim(0.8),
		Layers:    4,
		Standard:  "IEC 61558-1",
	}

	thickness, layers, err := spec.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 0.8, thickness)
	assert.Equal(t, 4, layers)
}

func TestInsulationSpecResolve_NoStandard(t *testing.T) {
	spec := InsulationSpec{Thickness: Dim(0.05)}

	thickness, layers, err := spec.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 0.05, thickness)
	assert.Equal(t, 1, layers)
}
