// Package gen populates the benchmark problem (A, b) on the coordinator.
//
// Generation is deterministic for a given seed: the same pattern, seed and n
// always produce the same bits, so a run can be reproduced exactly.
package gen

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/katalvlaran/matvecbench/matrix"
)

// DefaultSeed is the seed used when none is configured.
const DefaultSeed int64 = 42

// Pattern names accepted by ByName.
const (
	PatternUniform  = "uniform"  // every entry of A and b drawn from [0, 1)
	PatternSparse   = "sparse"   // mostly-zero A in dense storage: see Sparse
	PatternIdentity = "identity" // A = I, b = 1..n
)

// sparseBand is the width of the random prefix of row 0 in the sparse pattern.
const sparseBand = 100

var (
	// ErrUnknownPattern indicates a pattern name ByName does not know.
	ErrUnknownPattern = errors.New("gen: unknown pattern")

	// ErrShape indicates that a is not n×n for n = len(b).
	ErrShape = errors.New("gen: matrix and vector shapes disagree")
)

// Filler writes a problem instance into a and b. Implementations overwrite
// every entry they are responsible for and leave the rest untouched; callers
// pass freshly allocated (zeroed) buffers. Entries of a are written through
// Set or Apply so the matrix's numeric policy rejects non-finite values.
type Filler func(a *matrix.Dense, b []float64, seed int64) error

var patterns = map[string]Filler{
	PatternUniform:  Uniform,
	PatternSparse:   Sparse,
	PatternIdentity: Identity,
}

// Patterns returns the known pattern names, sorted.
func Patterns() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// ByName returns the Filler registered under name.
func ByName(name string) (Filler, error) {
	f, ok := patterns[name]
	if !ok {
		return nil, fmt.Errorf("%q (known: %v): %w", name, Patterns(), ErrUnknownPattern)
	}

	return f, nil
}

func checkShape(a *matrix.Dense, b []float64) error {
	if a == nil {
		return fmt.Errorf("nil matrix: %w", ErrShape)
	}
	if r, c := a.Shape(); r != len(b) || c != len(b) {
		return fmt.Errorf("%dx%d matrix, vector %d: %w", r, c, len(b), ErrShape)
	}

	return nil
}

// Uniform fills every entry of a, then every entry of b, in row-major order
// with values from [0, 1).
func Uniform(a *matrix.Dense, b []float64, seed int64) error {
	if err := checkShape(a, b); err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(seed))
	if err := a.Apply(func(_, _ int, _ float64) float64 { return rng.Float64() }); err != nil {
		return err
	}
	for i := range b {
		b[i] = rng.Float64()
	}

	return nil
}

// Sparse fills a mostly-zero matrix, drawing values from [0, 1) in this order:
//
//  1. A[0][0:min(n,100)] random;
//  2. A[1][100:100+k] = A[0][0:k] where k = min(100, n-100), when n > 100;
//  3. the diagonal A[i][i] random, for every i (overwriting step 1 at A[0][0]);
//  4. b random.
//
// Every other entry stays zero.
func Sparse(a *matrix.Dense, b []float64, seed int64) error {
	if err := checkShape(a, b); err != nil {
		return err
	}
	n := len(b)
	if n == 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))

	for j := 0; j < min(n, sparseBand); j++ {
		if err := a.Set(0, j, rng.Float64()); err != nil {
			return err
		}
	}
	for j := 0; j < min(sparseBand, n-sparseBand); j++ {
		v, err := a.At(0, j)
		if err != nil {
			return err
		}
		if err = a.Set(1, sparseBand+j, v); err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		if err := a.Set(i, i, rng.Float64()); err != nil {
			return err
		}
	}
	for i := range b {
		b[i] = rng.Float64()
	}

	return nil
}

// Identity sets A = I and b[i] = i+1, so the exact product is b itself.
// The seed is ignored.
func Identity(a *matrix.Dense, b []float64, _ int64) error {
	if err := checkShape(a, b); err != nil {
		return err
	}
	for i := range b {
		if err := a.Set(i, i, 1); err != nil {
			return err
		}
		b[i] = float64(i + 1)
	}

	return nil
}
