// Package matvecbench measures a distributed dense matrix–vector multiply.
//
// A group of ranks computes x = A·b for an n×n matrix: the coordinator
// (rank 0) builds the problem and broadcasts it, every rank multiplies its own
// contiguous block of rows, and the blocks are gathered back on the
// coordinator. The coordinator also computes the product serially, then
// reports speedup, efficiency and the largest difference between the two
// results.
//
// Layout:
//
//	matrix/       row-major Dense storage and the reference MatVec kernel
//	partition/    row blocks per rank and the gather layout (counts, offsets)
//	matvec/       block kernel (MultiplyRows), serial reference, MaxAbsDiff
//	comm/         Communicator interface (Bcast, Gatherv, Barrier, Wtime)
//	comm/local/   in-process group, one goroutine per rank
//	comm/tcp/     multi-process group, star around rank 0
//	collective/   Distribute (broadcast A, then b) and Collect (gatherv)
//	bench/        the orchestrator: phases, timing, metrics
//	gen/          deterministic problem generators
//	report/       text and JSON output, hardware description
//	config/       CLI configuration and validation
//	cmd/matvecbench/  the command
//
// Quick start:
//
//	go run ./cmd/matvecbench run --n 2000 --procs 4
package matvecbench
