package partition_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/matvecbench/partition"
	"github.com/stretchr/testify/require"
)

// TestRowsScenarioA: n=4 over 2 ranks splits evenly.
func TestRowsScenarioA(t *testing.T) {
	b0, err := partition.Rows(4, 2, 0)
	require.NoError(t, err)
	require.Equal(t, partition.Block{First: 0, Count: 2}, b0)

	b1, err := partition.Rows(4, 2, 1)
	require.NoError(t, err)
	require.Equal(t, partition.Block{First: 2, Count: 2}, b1)
	require.Equal(t, 4, b1.End())
}

// TestLayoutScenarioB: the remainder ranks get the extra row.
func TestLayoutScenarioB(t *testing.T) {
	lay, err := partition.NewLayout(5, 3)
	require.NoError(t, err)
	require.Equal(t, []int{2, 2, 1}, lay.Counts)
	require.Equal(t, []int{0, 2, 4}, lay.Offsets)
	require.NoError(t, lay.Check(5))
}

// TestRowsMoreRanksThanRows: ranks >= n own nothing and start at n.
func TestRowsMoreRanksThanRows(t *testing.T) {
	const n, size = 3, 5
	for r := 0; r < size; r++ {
		b, err := partition.Rows(n, size, r)
		require.NoError(t, err)
		if r < n {
			require.Equal(t, partition.Block{First: r, Count: 1}, b)
		} else {
			require.True(t, b.Empty())
			require.Equal(t, n, b.First)
		}
	}
}

// TestCoverageAndBalance sweeps (n, size) and checks that the blocks tile
// [0, n) exactly once, agree with the Layout, and differ by at most one row.
func TestCoverageAndBalance(t *testing.T) {
	for n := 0; n <= 40; n++ {
		for size := 1; size <= 12; size++ {
			t.Run(fmt.Sprintf("n=%d/size=%d", n, size), func(t *testing.T) {
				lay, err := partition.NewLayout(n, size)
				require.NoError(t, err)
				require.NoError(t, lay.Check(n))
				require.Equal(t, size, lay.Size())

				seen := make([]int, n)
				next := 0
				minC, maxC := n+1, -1
				for r := 0; r < size; r++ {
					b, err := partition.Rows(n, size, r)
					require.NoError(t, err)
					require.Equal(t, lay.Block(r), b)
					require.Equal(t, next, b.First) // contiguous, in rank order
					for i := b.First; i < b.End(); i++ {
						seen[i]++
					}
					next = b.End()
					minC, maxC = min(minC, b.Count), max(maxC, b.Count)
				}
				require.Equal(t, n, next)
				for i, c := range seen {
					require.Equalf(t, 1, c, "row %d covered %d times", i, c)
				}
				require.LessOrEqual(t, maxC-minC, 1)
			})
		}
	}
}

// TestRowsErrors covers argument validation.
func TestRowsErrors(t *testing.T) {
	_, err := partition.Rows(-1, 2, 0)
	require.ErrorIs(t, err, partition.ErrInvalidSize)

	_, err = partition.Rows(4, 0, 0)
	require.ErrorIs(t, err, partition.ErrInvalidGroup)

	_, err = partition.Rows(4, 2, 2)
	require.ErrorIs(t, err, partition.ErrInvalidRank)

	_, err = partition.Rows(4, 2, -1)
	require.ErrorIs(t, err, partition.ErrInvalidRank)

	_, err = partition.NewLayout(4, 0)
	require.ErrorIs(t, err, partition.ErrInvalidGroup)
}

// TestCheckDetectsViolations tampers with a valid layout.
func TestCheckDetectsViolations(t *testing.T) {
	cases := map[string]func(*partition.Layout){
		"sum":      func(l *partition.Layout) { l.Counts[2]++ },
		"offset0":  func(l *partition.Layout) { l.Offsets[0] = 1 },
		"prefix":   func(l *partition.Layout) { l.Offsets[2] = 3 },
		"balance":  func(l *partition.Layout) { l.Counts[0], l.Counts[2] = 3, 0; l.Offsets[1], l.Offsets[2] = 3, 5 },
		"mismatch": func(l *partition.Layout) { l.Offsets = l.Offsets[:2] },
	}
	for name, tamper := range cases {
		t.Run(name, func(t *testing.T) {
			lay, err := partition.NewLayout(5, 3)
			require.NoError(t, err)
			tamper(lay)
			require.ErrorIs(t, lay.Check(5), partition.ErrPartitionViolation)
		})
	}

	var nilLayout *partition.Layout
	require.ErrorIs(t, nilLayout.Check(0), partition.ErrPartitionViolation)
}
