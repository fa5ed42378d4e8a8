// Package matrix provides the dense row-major storage used by the benchmark.
//
// The matrix package provides:
//
//   - Dense: a flat []float64 buffer with the explicit offset formula i*cols + j,
//     safe accessors (At/Set return errors instead of panicking) and raw access
//     to the backing slice for collective transfers (RawData).
//   - MatVec: the canonical y = A·x kernel with a fixed i→j accumulation order.
//   - Validators shared by the kernels (nil, square, vector length).
//
// The backing slice of a Dense is what travels through broadcast; its layout is
// therefore part of the wire contract: row i occupies data[i*c : (i+1)*c].
package matrix
