package matvec_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/matvecbench/matvec"
	"github.com/katalvlaran/matvecbench/partition"
)

var sinkRows []float64

func BenchmarkMultiplyRows(b *testing.B) {
	for _, n := range []int{256, 1024} {
		for _, size := range []int{1, 4} {
			b.Run(fmt.Sprintf("n=%d/size=%d", n, size), func(b *testing.B) {
				a, v := randomSystem(b, n, 1)
				blk, err := partition.Rows(n, size, 0)
				if err != nil {
					b.Fatal(err)
				}
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					sinkRows = matvec.MultiplyRows(a, v, blk)
				}
			})
		}
	}
}
