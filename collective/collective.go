// Package collective implements the two data-movement phases of a run on top
// of a comm.Communicator: replicating the problem to every rank, and gathering
// per-rank result blocks back on the coordinator.
//
// Both functions are collective: every rank of the group must call them, in
// the same order, with buffers sized for the same n.
package collective

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/matvecbench/comm"
	"github.com/katalvlaran/matvecbench/matrix"
	"github.com/katalvlaran/matvecbench/partition"
)

var (
	// ErrNilBuffer indicates a nil matrix passed to Distribute.
	ErrNilBuffer = errors.New("collective: nil buffer")

	// ErrShape indicates a matrix that is not n×n for the vector length n.
	ErrShape = errors.New("collective: matrix and vector shapes disagree")
)

// Distribute broadcasts a and then b from comm.Root. On the root they hold the
// problem; on every other rank they are receive buffers of the same shape and
// are overwritten in place.
func Distribute(c comm.Communicator, a *matrix.Dense, b []float64) error {
	if a == nil {
		return fmt.Errorf("collective: distribute: %w", ErrNilBuffer)
	}
	if r, cols := a.Shape(); r != len(b) || cols != len(b) {
		return fmt.Errorf("collective: distribute: %dx%d matrix, vector %d: %w", r, cols, len(b), ErrShape)
	}
	// Matrix first, vector second: receivers must match this order.
	if err := c.Bcast(a.RawData(), comm.Root); err != nil {
		return fmt.Errorf("collective: distribute matrix: %w", err)
	}
	if err := c.Bcast(b, comm.Root); err != nil {
		return fmt.Errorf("collective: distribute vector: %w", err)
	}

	return nil
}

// Collect gathers every rank's local block into one vector on comm.Root using
// the counts and offsets of lay. The root returns the assembled vector of
// length lay.Total(); other ranks pass a nil lay and get nil.
//
// Panics if the root passes a nil lay: the other ranks are already committed
// to the gather and an error return would leave them blocked.
func Collect(c comm.Communicator, local []float64, lay *partition.Layout) ([]float64, error) {
	if c.Rank() != comm.Root {
		if err := c.Gatherv(local, nil, nil, nil, comm.Root); err != nil {
			return nil, fmt.Errorf("collective: collect: %w", err)
		}
		return nil, nil
	}
	if lay == nil {
		panic("collective: collect: nil layout on the coordinator")
	}
	global := make([]float64, lay.Total())
	if err := c.Gatherv(local, global, lay.Counts, lay.Offsets, comm.Root); err != nil {
		return nil, fmt.Errorf("collective: collect: %w", err)
	}

	return global, nil
}
