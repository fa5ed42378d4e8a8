package bench

import "errors"

var (
	// ErrInvalidSize indicates a non-positive matrix dimension.
	ErrInvalidSize = errors.New("bench: matrix dimension must be > 0")

	// ErrNilCommunicator indicates Run was called without a process group.
	ErrNilCommunicator = errors.New("bench: nil communicator")

	// ErrInvalidGroup indicates a communicator reporting fewer than one rank.
	ErrInvalidGroup = errors.New("bench: group size must be >= 1")

	// ErrInvalidRepeats indicates WithRepeats below one.
	ErrInvalidRepeats = errors.New("bench: repeats must be >= 1")
)
