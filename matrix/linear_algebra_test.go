// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/matvecbench/matrix"
	"github.com/stretchr/testify/require"
)

// TestMatVecKnown checks a hand-computed 2×3 product.
func TestMatVecKnown(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	y, err := matrix.MatVec(m, []float64{1, 0, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{4, 10}, y)
}

// TestMatVecIdentity: I·x == x exactly.
func TestMatVecIdentity(t *testing.T) {
	id, err := matrix.NewIdentity(5)
	require.NoError(t, err)
	x := randVec(5, 7)

	y, err := matrix.MatVec(id, x)
	require.NoError(t, err)
	require.Equal(t, x, y)
}

// TestMatVecMatchesNaiveLoop asserts bit-identity with the textbook loop.
func TestMatVecMatchesNaiveLoop(t *testing.T) {
	const n = 17
	m := mustDense(t, n, n)
	fillDenseRand(t, m, 1337)
	x := randVec(n, 4242)

	want := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, err := m.At(i, j)
			require.NoError(t, err)
			want[i] += float64(a * x[j])
		}
	}
	got, err := matrix.MatVec(m, x)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestMatVecErrors covers the validation order: nil matrix, nil vector, length.
func TestMatVecErrors(t *testing.T) {
	_, err := matrix.MatVec(nil, []float64{1})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	m := mustDense(t, 2, 2)
	_, err = matrix.MatVec(m, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.MatVec(m, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestValidateSquare distinguishes nil and non-square inputs.
func TestValidateSquare(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateSquareNonNil(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateSquareNonNil(mustDense(t, 2, 3)), matrix.ErrNonSquare)
	require.NoError(t, matrix.ValidateSquareNonNil(mustDense(t, 3, 3)))
}
