package partition

import (
	"fmt"

	"github.com/samber/lo"
)

// Block is the contiguous row range [First, First+Count) owned by one rank.
type Block struct {
	First int // first owned global row
	Count int // number of owned rows (may be zero)
}

// End returns the exclusive upper bound of the block.
func (b Block) End() int { return b.First + b.Count }

// Empty reports whether the block owns no rows.
func (b Block) Empty() bool { return b.Count == 0 }

// validate checks the (n, size) pair shared by Rows and NewLayout.
func validate(n, size int) error {
	if n < 0 {
		return fmt.Errorf("n=%d: %w", n, ErrInvalidSize)
	}
	if size < 1 {
		return fmt.Errorf("size=%d: %w", size, ErrInvalidGroup)
	}

	return nil
}

// Rows returns the block owned by rank in a group of size ranks over n rows.
//
// Complexity: O(1).
func Rows(n, size, rank int) (Block, error) {
	if err := validate(n, size); err != nil {
		return Block{}, err
	}
	if rank < 0 || rank >= size {
		return Block{}, fmt.Errorf("rank=%d size=%d: %w", rank, size, ErrInvalidRank)
	}

	return rows(n, size, rank), nil
}

// rows is the closed-form rule; callers have validated the arguments.
func rows(n, size, rank int) Block {
	base, rem := n/size, n%size
	if rank < rem {
		return Block{First: rank * (base + 1), Count: base + 1}
	}

	return Block{First: rem*(base+1) + (rank-rem)*base, Count: base}
}

// Layout holds per-rank receive counts and displacements for a gather.
// Counts[r] is the row count of rank r; Offsets is the prefix sum of Counts.
type Layout struct {
	Counts  []int
	Offsets []int
}

// NewLayout builds the Layout for n rows over size ranks.
//
// Complexity: O(size).
func NewLayout(n, size int) (*Layout, error) {
	if err := validate(n, size); err != nil {
		return nil, err
	}
	lay := &Layout{
		Counts:  make([]int, size),
		Offsets: make([]int, size),
	}
	for r := 0; r < size; r++ {
		lay.Counts[r] = rows(n, size, r).Count
		if r > 0 {
			lay.Offsets[r] = lay.Offsets[r-1] + lay.Counts[r-1]
		}
	}

	return lay, nil
}

// Size returns the number of ranks described by the layout.
func (l *Layout) Size() int { return len(l.Counts) }

// Total returns the number of rows covered (sum of Counts).
func (l *Layout) Total() int { return lo.Sum(l.Counts) }

// Block returns the block of rank r as recorded in the layout.
func (l *Layout) Block(r int) Block {
	return Block{First: l.Offsets[r], Count: l.Counts[r]}
}

// Check verifies the layout invariants against n:
// sum(Counts) == n, Offsets[0] == 0, Offsets[i] == Offsets[i-1]+Counts[i-1],
// and max(Counts)-min(Counts) <= 1.
func (l *Layout) Check(n int) error {
	if l == nil || len(l.Counts) == 0 || len(l.Counts) != len(l.Offsets) {
		return fmt.Errorf("malformed layout: %w", ErrPartitionViolation)
	}
	if total := l.Total(); total != n {
		return fmt.Errorf("sum(counts)=%d want %d: %w", total, n, ErrPartitionViolation)
	}
	if l.Offsets[0] != 0 {
		return fmt.Errorf("offsets[0]=%d: %w", l.Offsets[0], ErrPartitionViolation)
	}
	for i := 1; i < len(l.Counts); i++ {
		if l.Offsets[i] != l.Offsets[i-1]+l.Counts[i-1] {
			return fmt.Errorf("offsets[%d]=%d: %w", i, l.Offsets[i], ErrPartitionViolation)
		}
	}
	if lo.Max(l.Counts)-lo.Min(l.Counts) > 1 {
		return fmt.Errorf("unbalanced counts %v: %w", l.Counts, ErrPartitionViolation)
	}

	return nil
}
