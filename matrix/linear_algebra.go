// SPDX-License-Identifier: MIT
// Package matrix: the canonical MatVec kernel over Dense.
//
// Purpose:
//   - Provide y = A·x with strict fail-fast validation and a fixed accumulation order.

package matrix

import "fmt"

// ZeroSum is the initial accumulator value for dot products.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMatVec = "MatVec"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order, every term is accumulated (no zero skipping)
// and every product is rounded before the add (no FMA fusion), so the result
// matches a naive Σ_j m[i,j]·x[j] bit for bit on every architecture.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m *Dense, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.c); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, m.r)
	var acc float64
	for i := range y {
		acc = ZeroSum
		for j, v := range m.data[i*m.c : (i+1)*m.c] {
			acc += float64(v * x[j])
		}
		y[i] = acc
	}

	return y, nil
}
