// Package bench runs the distributed matrix–vector benchmark on one rank.
//
// Every rank of a group calls Run with the same n and options. The phases are
// strictly ordered:
//
//  1. Setup: the coordinator fills A and b; other ranks allocate receive buffers.
//  2. Reference: the coordinator times matvec.Serial.
//  3. Distribute: A then b are broadcast; a barrier closes the phase.
//  4. Compute: barrier, start clock, multiply the owned row block.
//  5. Collect: gather the blocks on the coordinator, barrier, stop clock.
//
// Broadcast cost is outside the parallel timing window; the gather is inside.
// The coordinator derives speedup, efficiency and the maximum absolute
// difference between the parallel and serial results.
//
// Any error from a collective is fatal to the run: Run returns it wrapped with
// the phase name and no Result. A broken partition layout is a programming
// defect and panics.
package bench
