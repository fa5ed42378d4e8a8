package bench

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/matvecbench/collective"
	"github.com/katalvlaran/matvecbench/comm"
	"github.com/katalvlaran/matvecbench/matrix"
	"github.com/katalvlaran/matvecbench/matvec"
	"github.com/katalvlaran/matvecbench/partition"
)

// Phase names, used in logs and error wrapping.
const (
	PhaseSetup      = "setup"
	PhaseReference  = "reference"
	PhaseDistribute = "distribute"
	PhaseCompute    = "compute"
	PhaseCollect    = "collect"
)

// Result is the outcome of one run, produced on the coordinator only.
type Result struct {
	N            int
	GroupSize    int
	SerialTime   time.Duration
	ParallelTime time.Duration
	Speedup      float64
	Efficiency   float64 // percent
	MaxError     float64
	Samples      int // timed repetitions per path
}

func phaseErrorf(phase string, err error) error {
	return fmt.Errorf("bench: %s: %w", phase, err)
}

// seconds converts a Wtime difference to a Duration.
func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Run executes the benchmark for an n×n problem on the calling rank.
//
// The coordinator (comm.Root) returns the Result; every other rank returns
// nil, nil on success. Configuration errors (n <= 0, nil or empty group, bad
// repeats) are reported before any collective is issued.
func Run(c comm.Communicator, n int, opts ...Option) (*Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("n=%d: %w", n, ErrInvalidSize)
	}
	if c == nil {
		return nil, ErrNilCommunicator
	}
	size, rank := c.Size(), c.Rank()
	if size < 1 {
		return nil, fmt.Errorf("size=%d: %w", size, ErrInvalidGroup)
	}
	o := gatherOptions(opts...)
	if o.repeats < 1 {
		return nil, fmt.Errorf("repeats=%d: %w", o.repeats, ErrInvalidRepeats)
	}
	root := rank == comm.Root
	log := o.log.With().Int("rank", rank).Int("size", size).Int("n", n).Logger()

	// Setup.
	a, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, phaseErrorf(PhaseSetup, err)
	}
	b := make([]float64, n)
	if root {
		if err = o.filler(a, b, o.seed); err != nil {
			return nil, phaseErrorf(PhaseSetup, err)
		}
		if err = checkFinite(b); err != nil {
			return nil, phaseErrorf(PhaseSetup, err)
		}
	}
	logPhase(log, PhaseSetup, 0)

	// Reference, coordinator only.
	var xSerial []float64
	tSerial := math.Inf(1)
	if root {
		for k := 0; k < o.repeats; k++ {
			t0 := c.Wtime()
			if xSerial, err = matvec.Serial(a, b); err != nil {
				return nil, phaseErrorf(PhaseReference, err)
			}
			tSerial = min(tSerial, c.Wtime()-t0)
		}
		logPhase(log, PhaseReference, tSerial)
	}

	// Distribute.
	t0 := c.Wtime()
	if err = collective.Distribute(c, a, b); err != nil {
		return nil, phaseErrorf(PhaseDistribute, err)
	}
	if err = c.Barrier(); err != nil {
		return nil, phaseErrorf(PhaseDistribute, err)
	}
	logPhase(log, PhaseDistribute, c.Wtime()-t0)

	// Partition, Compute and Collect share the parallel timing window.
	var xParallel []float64
	tParallel := math.Inf(1)
	for k := 0; k < o.repeats; k++ {
		if err = c.Barrier(); err != nil {
			return nil, phaseErrorf(PhaseCompute, err)
		}
		t0 = c.Wtime()
		blk, lay, err := split(n, size, rank)
		if err != nil {
			return nil, phaseErrorf(PhaseCompute, err)
		}
		local := matvec.MultiplyRows(a, b, blk)
		tCompute := c.Wtime() - t0
		if xParallel, err = collective.Collect(c, local, lay); err != nil {
			return nil, phaseErrorf(PhaseCollect, err)
		}
		if err = c.Barrier(); err != nil {
			return nil, phaseErrorf(PhaseCollect, err)
		}
		elapsed := c.Wtime() - t0
		tParallel = min(tParallel, elapsed)
		log.Debug().
			Int("sample", k).
			Int("first_row", blk.First).
			Int("rows", blk.Count).
			Dur("compute", seconds(tCompute)).
			Dur("window", seconds(elapsed)).
			Msg(PhaseCompute)
	}
	if !root {
		logPhase(log, PhaseCollect, 0)
		return nil, nil
	}
	logPhase(log, PhaseCollect, tParallel)

	maxErr, err := matvec.MaxAbsDiff(xParallel, xSerial)
	if err != nil {
		return nil, phaseErrorf(PhaseCollect, err)
	}

	return newResult(n, size, o.repeats, tSerial, tParallel, maxErr), nil
}

// split returns this rank's row block and, on the coordinator, the gather
// layout of the whole group.
func split(n, size, rank int) (partition.Block, *partition.Layout, error) {
	blk, err := partition.Rows(n, size, rank)
	if err != nil || rank != comm.Root {
		return blk, nil, err
	}
	lay, err := partition.NewLayout(n, size)
	if err != nil {
		return blk, nil, err
	}
	if err = lay.Check(n); err != nil {
		panic(err)
	}

	return blk, lay, nil
}

// checkFinite rejects a vector holding NaN or ±Inf, mirroring the policy
// Dense applies to the matrix.
func checkFinite(b []float64) error {
	for i, v := range b {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("b[%d]=%v: %w", i, v, matrix.ErrNaNInf)
		}
	}

	return nil
}

// newResult derives the metrics from the best serial and parallel times in
// seconds. A parallel time that rounds to zero yields zero speedup and
// efficiency rather than an infinity.
func newResult(n, size, samples int, tSerial, tParallel, maxErr float64) *Result {
	r := &Result{
		N:            n,
		GroupSize:    size,
		SerialTime:   seconds(tSerial),
		ParallelTime: seconds(tParallel),
		MaxError:     maxErr,
		Samples:      samples,
	}
	if tParallel > 0 {
		r.Speedup = tSerial / tParallel
		r.Efficiency = r.Speedup / float64(size) * 100
	}

	return r
}

func logPhase(log zerolog.Logger, phase string, elapsed float64) {
	log.Debug().Str("phase", phase).Dur("elapsed", seconds(elapsed)).Msg("phase done")
}
