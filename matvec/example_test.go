package matvec_test

import (
	"fmt"

	"github.com/katalvlaran/matvecbench/matrix"
	"github.com/katalvlaran/matvecbench/matvec"
	"github.com/katalvlaran/matvecbench/partition"
)

// ExampleMultiplyRows computes the rows owned by rank 1 of 2.
func ExampleMultiplyRows() {
	a, _ := matrix.NewDenseFrom(3, 3, []float64{
		1, 0, 0,
		0, 2, 0,
		1, 1, 1,
	})
	b := []float64{1, 2, 3}
	blk, _ := partition.Rows(3, 2, 1)
	fmt.Println(blk.First, blk.Count, matvec.MultiplyRows(a, b, blk))
	// Output: 2 1 [6]
}

func ExampleMaxAbsDiff() {
	d, _ := matvec.MaxAbsDiff([]float64{1, 2}, []float64{1, 2.25})
	fmt.Printf("%e\n", d)
	// Output: 2.500000e-01
}
