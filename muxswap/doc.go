// Package muxswap implements the multiplexed controlled swap: under a
// selection index in [0, L) and optional external control qubits, the
// selected one of L data registers is exchanged with a dedicated output
// register. Selection uses unary iteration, a ladder of Toffoli-like
// gates that materializes one active-flag qubit per leaf index at O(L)
// auxiliary cost instead of O(2^selBits).
//
// The iteration length L is declared independently of the selection
// bit-width, so sparse indexing (L < 2^selBits) is supported; selection
// values at or beyond L leave every register untouched.
//
// The aggregated Toffoli-equivalent cost is L·n_b + L − 2 + n_c for
// target width n_b and n_c control qubits. The single corner the closed
// form does not cover is L = 1 with no controls, where the operator is a
// plain Clifford register swap.
package muxswap
