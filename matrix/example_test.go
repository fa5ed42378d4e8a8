package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/matvecbench/matrix"
)

// ExampleMatVec multiplies a small row-major matrix by a vector.
func ExampleMatVec() {
	// 2x3 matrix:
	//   [1 2 3]
	//   [4 5 6]
	m, _ := matrix.NewDenseFrom(2, 3, []float64{1, 2, 3, 4, 5, 6})
	y, _ := matrix.MatVec(m, []float64{1, 0, 1})
	fmt.Println(y)

	// Output:
	// [4 10]
}

// ExampleDense_Row shows that rows are contiguous windows of the flat buffer.
func ExampleDense_Row() {
	m, _ := matrix.NewIdentity(3)
	row, _ := m.Row(1)
	fmt.Println(row, len(m.RawData()))

	// Output:
	// [0 1 0] 9
}
