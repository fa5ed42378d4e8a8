// Package matvec holds the two compute paths of the benchmark: the row-block
// kernel each rank runs on its own partition (MultiplyRows), and the serial
// reference the coordinator runs on the whole matrix (Serial).
//
// Both paths accumulate every row as
//
//	x[i] = 0
//	for j := 0; j < n; j++ { x[i] += A[i,j]*b[j] }
//
// with no reordering and no skipped terms, so a row computed by either path
// is bit-identical. MaxAbsDiff compares the two results.
package matvec
