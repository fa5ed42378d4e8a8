package partition

import "errors"

var (
	// ErrInvalidSize indicates a negative number of rows.
	ErrInvalidSize = errors.New("partition: row count must be >= 0")

	// ErrInvalidGroup indicates a group size smaller than one.
	ErrInvalidGroup = errors.New("partition: group size must be >= 1")

	// ErrInvalidRank indicates a rank outside [0, size).
	ErrInvalidRank = errors.New("partition: rank out of range")

	// ErrPartitionViolation signals a Layout that does not cover [0, n)
	// exactly once or is unbalanced. It is a programming defect.
	ErrPartitionViolation = errors.New("partition: layout invariant violated")
)
