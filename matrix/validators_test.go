package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/fronthaul/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidators covers each sentinel of the numeric contract.
func TestValidators(t *testing.T) {
	sq, err := matrix.NewDenseFrom([][]float64{{1, 0.5}, {0.4, 1}})
	require.NoError(t, err)
	assert.ErrorIs(t, matrix.ValidateSymmetric(sq, 0), matrix.ErrAsymmetry)
	assert.NoError(t, matrix.ValidateSymmetric(sq, 0.2))

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	assert.ErrorIs(t, matrix.ValidateSquare(rect), matrix.ErrNonSquare)
	assert.ErrorIs(t, matrix.ValidateSquare(nil), matrix.ErrNilMatrix)

	bad, err := matrix.NewDenseFrom([][]float64{{math.NaN()}})
	require.NoError(t, err)
	assert.ErrorIs(t, matrix.ValidateNaNInf(bad), matrix.ErrNaNInf)
	assert.ErrorIs(t, matrix.ValidateUnitInterval(bad), matrix.ErrNotUnitInterval)

	big, err := matrix.NewDenseFrom([][]float64{{1.5}})
	require.NoError(t, err)
	assert.ErrorIs(t, matrix.ValidateUnitInterval(big), matrix.ErrNotUnitInterval)
}
