// Package swapzero implements the index-controlled swap-with-zero operator.
//
// SwapWithZero takes a selection index x and M equally wide data registers
// and relocates register x's content into register slot 0, using a binary
// reduction of approximate controlled swaps: at selection bit j, register
// pairs a stride 2^j apart exchange under that bit's control, so after all
// bits are consumed the selected register has cascaded down to slot 0. The
// schedule executes M−1 CSwapApprox operations in total.
//
// The selection index may be multi-dimensional: a tuple of per-axis
// sub-indices addressing a logical grid of registers. Axes reduce from the
// last to the first — each later axis collapses its coordinate to 0 for
// every combination of earlier coordinates, then the next axis reduces the
// surviving column — composing per-axis networks instead of one flat
// register of size Π n_d.
//
// The M−1 registers left behind hold the permutation produced by the
// executed swap schedule: a deterministic pure function of the inputs,
// shared verbatim with the classical evaluation path.
package swapzero
