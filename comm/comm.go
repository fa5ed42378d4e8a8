package comm

import "fmt"

// Root is the coordinating rank. It is more semantic than a bare 0.
const Root = 0

// Communicator is one rank's handle on a process group.
type Communicator interface {
	// Rank returns this process's ordinal in [0, Size()).
	Rank() int

	// Size returns the number of processes in the group.
	Size() int

	// Bcast replicates root's buf into buf on every other rank.
	// All ranks pass a buffer of the same length.
	Bcast(buf []float64, root int) error

	// Gatherv concatenates every rank's send buffer into recv on root.
	// On root, counts[r] and displs[r] give the length and offset of rank r's
	// segment in recv; other ranks may pass nil for recv, counts and displs.
	// Zero-length segments are legal.
	Gatherv(send, recv []float64, counts, displs []int, root int) error

	// Barrier returns once every rank of the group has entered it.
	Barrier() error

	// Wtime returns wall-clock seconds since an arbitrary fixed point.
	// Only differences between two calls on the same rank are meaningful.
	Wtime() float64

	// Close releases the resources of this rank. Further calls fail with ErrClosed.
	Close() error
}

// CheckRoot validates that root names a rank of a group of size ranks.
func CheckRoot(root, size int) error {
	if root < 0 || root >= size {
		return fmt.Errorf("root=%d size=%d: %w", root, size, ErrInvalidRoot)
	}

	return nil
}

// CheckGatherv validates the root-side arguments of Gatherv: one count and
// displacement per rank, every segment inside recv, and the root's own
// segment matching len(send).
func CheckGatherv(send, recv []float64, counts, displs []int, root, size int) error {
	if len(counts) != size || len(displs) != size {
		return fmt.Errorf("gatherv: %d counts, %d displs for %d ranks: %w",
			len(counts), len(displs), size, ErrCountMismatch)
	}
	for r := 0; r < size; r++ {
		if counts[r] < 0 || displs[r] < 0 || displs[r]+counts[r] > len(recv) {
			return fmt.Errorf("gatherv: rank %d segment [%d,+%d) outside recv of %d: %w",
				r, displs[r], counts[r], len(recv), ErrCountMismatch)
		}
	}
	if counts[root] != len(send) {
		return fmt.Errorf("gatherv: root sends %d, counts[%d]=%d: %w",
			len(send), root, counts[root], ErrCountMismatch)
	}

	return nil
}
