package partition_test

import (
	"fmt"

	"github.com/katalvlaran/matvecbench/partition"
)

func ExampleNewLayout() {
	lay, _ := partition.NewLayout(5, 3)
	fmt.Println("counts:", lay.Counts)
	fmt.Println("offsets:", lay.Offsets)

	// Output:
	// counts: [2 2 1]
	// offsets: [0 2 4]
}

func ExampleRows() {
	for r := 0; r < 3; r++ {
		b, _ := partition.Rows(7, 3, r)
		fmt.Printf("rank %d: [%d,%d)\n", r, b.First, b.End())
	}

	// Output:
	// rank 0: [0,3)
	// rank 1: [3,5)
	// rank 2: [5,7)
}
