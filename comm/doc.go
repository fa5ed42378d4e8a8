// Package comm defines the communication substrate consumed by the benchmark.
//
// A Communicator is one rank's view of an already-formed group of Size()
// processes. All collective calls (Bcast, Gatherv, Barrier) block until every
// rank of the group has issued the matching call, and every rank must issue
// the same collectives in the same order. Data always crosses rank
// boundaries by value: a received buffer never aliases a sender's memory.
//
// Two implementations live in subpackages:
//
//	comm/local  an in-process group, one goroutine per rank, channel links.
//	comm/tcp    a multi-process group in a star around rank 0 over TCP.
//
// Only the coordinator model is supported: rank 0 (Root) is the hub.
package comm
