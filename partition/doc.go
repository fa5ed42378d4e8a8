// Package partition splits n matrix rows into contiguous blocks, one per rank.
//
// The rule is closed form: with base = n/size and rem = n%size, ranks
// 0..rem-1 own base+1 rows and the remaining ranks own base rows. Blocks are
// laid out in rank order, so together they cover [0, n) exactly once.
//
// Every rank computes its own Block with Rows; the coordinator additionally
// builds a Layout (per-rank counts and prefix-sum offsets) to drive a
// variable-length gather.
//
//	n=5, size=3:  counts = [2 2 1]  offsets = [0 2 4]
//	              rank 0 → [0,2)  rank 1 → [2,4)  rank 2 → [4,5)
//
// When size > n, ranks n..size-1 own zero rows; their blocks start at n.
package partition
