// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/connstat/matrix"
)

func TestTriangleLen(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, matrix.TriangleLen(0))
	require.Equal(t, 0, matrix.TriangleLen(1))
	require.Equal(t, 1, matrix.TriangleLen(2))
	require.Equal(t, 6, matrix.TriangleLen(4))
}

func TestUpperPairs_CanonicalOrder(t *testing.T) {
	t.Parallel()

	require.Equal(t, []matrix.Pair{
		{0, 1}, {0, 2}, {0, 3},
		{1, 2}, {1, 3},
		{2, 3},
	}, matrix.UpperPairs(4))
	require.Empty(t, matrix.UpperPairs(1))
}

func TestUpperTriangle_RowMajor(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 3, 3, []float64{
		0, 1, 2,
		9, 0, 3,
		9, 9, 0,
	})
	got, err := matrix.UpperTriangle(m)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, got)

	slow, err := matrix.UpperTriangle(hide{m})
	require.NoError(t, err)
	require.Equal(t, got, slow)

	_, err = matrix.UpperTriangle(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestFromUpperTriangle_SymmetricZeroDiagonal(t *testing.T) {
	t.Parallel()

	m, err := matrix.FromUpperTriangle([]float64{0.1, 0.2, 0.3}, 3)
	require.NoError(t, err)
	require.Equal(t, []float64{
		0, 0.1, 0.2,
		0.1, 0, 0.3,
		0.2, 0.3, 0,
	}, flatten(t, m))
	require.NoError(t, matrix.ValidateSymmetric(m, matrix.WithEpsilon(0)))
	require.NoError(t, matrix.ValidateZeroDiagonal(m, matrix.WithEpsilon(0)))

	back, err := matrix.UpperTriangle(m)
	require.NoError(t, err)
	require.Equal(t, []float64{0.1, 0.2, 0.3}, back)
}

func TestFromUpperTriangle_Errors(t *testing.T) {
	t.Parallel()

	_, err := matrix.FromUpperTriangle([]float64{1, 2}, 3)
	require.ErrorIs(t, err, matrix.ErrTriangleLength)

	_, err = matrix.FromUpperTriangle(nil, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestValidators(t *testing.T) {
	t.Parallel()

	asym := NewFilledDense(t, 2, 2, []float64{0, 1, 2, 0})
	require.ErrorIs(t, matrix.ValidateSymmetric(asym), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(asym, matrix.WithEpsilon(1)))

	diag := NewFilledDense(t, 2, 2, []float64{1, 0, 0, 0})
	require.ErrorIs(t, matrix.ValidateZeroDiagonal(diag), matrix.ErrNonZeroDiagonal)

	var nilDense *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(nilDense), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateSameShape(MustDense(t, 2, 2), MustDense(t, 3, 3)), matrix.ErrDimensionMismatch)
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { matrix.WithEpsilon(-1) })
	require.Panics(t, func() { matrix.WithDelimiter('\n') })
	require.Panics(t, func() { matrix.WithDelimiter('7') })
	require.Panics(t, func() { matrix.WithPrecision(-2) })
}
