package bench_test

import (
	"fmt"

	"github.com/katalvlaran/matvecbench/bench"
	"github.com/katalvlaran/matvecbench/comm"
	"github.com/katalvlaran/matvecbench/comm/local"
)

// ExampleRun runs a four-rank in-process group; only the coordinator gets a Result.
func ExampleRun() {
	err := local.Run(4, func(c comm.Communicator) error {
		res, err := bench.Run(c, 64)
		if err != nil {
			return err
		}
		if res != nil {
			fmt.Printf("n=%d ranks=%d max error %e\n", res.N, res.GroupSize, res.MaxError)
		}
		return nil
	})
	if err != nil {
		fmt.Println(err)
	}
	// Output: n=64 ranks=4 max error 0.000000e+00
}
