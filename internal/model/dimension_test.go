package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionResolve_Nominal(t *testing.T) {
	v, err := Dim(0.5).Resolve()
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
}

func TestDimensionResolve_NominalWinsOverBounds(t *testing.T) {
	d := DimRange(0.4, 0.6)
	nom := 0.55
	d.Nominal = &nom

	v, err := d.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 0.55, v)
}

func TestDimensionResolve_Midpoint(t *testing.T) {
	v, err := DimRange(0.4, 0.6).Resolve()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestDimensionResolve_SingleBound(t *testing.T) {
	min := 0.4
	v, err := Dimension{Minimum: &min}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 0.4, v)

	max := 0.6
	v, err = Dimension{Maximum: &max}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 0.6, v)
}

func TestDimensionResolve_Empty(t *testing.T) {
	_, err := Dimension{}.Resolve()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDimension))
}

func TestDimensionIsZero(t *testing.T) {
	assert.True(t, Dimension{}.IsZero())
	assert.False(t, Dim(1).IsZero())
	assert.False(t, DimRange(1, 2).IsZero())
}
