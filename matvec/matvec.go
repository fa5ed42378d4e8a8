package matvec

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/matvecbench/matrix"
	"github.com/katalvlaran/matvecbench/partition"
)

// ErrLengthMismatch is returned by MaxAbsDiff for vectors of different length.
var ErrLengthMismatch = errors.New("matvec: vector length mismatch")

// MultiplyRows returns the rows blk.First..blk.End()-1 of a·b.
// Entry i is the dot product of global row blk.First+i with b.
//
// Panics if:
//   - a is nil
//   - len(b) != a.Cols()
//   - blk has a negative field or extends past a.Rows()
//
// A block with Count 0 returns an empty, non-nil slice.
//
// Complexity: O(blk.Count * n).
func MultiplyRows(a *matrix.Dense, b []float64, blk partition.Block) []float64 {
	if a == nil {
		panic("matvec: nil matrix")
	}
	rows, cols := a.Shape()
	if len(b) != cols {
		panic(fmt.Sprintf("matvec: vector length %d, matrix has %d columns", len(b), cols))
	}
	if blk.First < 0 || blk.Count < 0 || blk.End() > rows {
		panic(fmt.Sprintf("matvec: block [%d,+%d) outside %d rows", blk.First, blk.Count, rows))
	}

	out := make([]float64, blk.Count)
	var acc float64
	for i := range out {
		row, err := a.Row(blk.First + i)
		if err != nil {
			panic(err)
		}
		acc = matrix.ZeroSum
		for j, v := range row {
			acc += float64(v * b[j]) // conversion forbids FMA fusion
		}
		out[i] = acc
	}

	return out
}

// Serial computes a·b for a square a on the calling goroutine.
// It is the reference result and the serial-time baseline.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrDimensionMismatch
// (wrapped).
func Serial(a *matrix.Dense, b []float64) ([]float64, error) {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return nil, fmt.Errorf("matvec: serial: %w", err)
	}
	x, err := matrix.MatVec(a, b)
	if err != nil {
		return nil, fmt.Errorf("matvec: serial: %w", err)
	}

	return x, nil
}

// MaxAbsDiff returns max_i |x[i]-y[i]|, or 0 for empty vectors.
// Positions where the difference is NaN never compare greater and are
// skipped, so the result is never NaN.
func MaxAbsDiff(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("len %d vs %d: %w", len(x), len(y), ErrLengthMismatch)
	}
	var worst float64
	for i := range x {
		if d := math.Abs(x[i] - y[i]); d > worst {
			worst = d
		}
	}

	return worst, nil
}
