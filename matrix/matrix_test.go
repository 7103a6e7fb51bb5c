package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fleetsolver/matrix"
)

func TestDenseAtSetRoundTrip(t *testing.T) {
	m, err := matrix.NewDense(3, 4)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 42.5))

	got, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 42.5, got)

	got, err = m.At(0, 0)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestDenseOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(2, 0)
	assert.Error(t, err)
	assert.Error(t, m.Set(-1, 0, 1))
}

func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestDenseClone(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 1, 7))

	c := m.Clone()
	require.NoError(t, m.Set(0, 1, 99))

	v, err := c.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v, "clone must be independent of the source")
}
