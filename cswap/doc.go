// Package cswap implements the approximate controlled register swap.
//
// CSwapApprox exchanges two n-qubit registers under a single control,
// correct up to a fixed relative phase in the computational basis: the
// phase is uniform over the data — never entangled with it — so a
// downstream inverse can absorb it. Giving up exact phase correctness buys
// a fourfold reduction in non-Clifford cost: four T gates per qubit pair
// instead of the sixteen a naive controlled swap spends.
//
// The register swap decomposes into n independent single-qubit-pair
// gadgets (SwapPairApprox) threaded on the shared control; the gate count
// has no data dependence, and a symbolic width n still yields the exact
// 4·n cost expression through the Countable capability.
package cswap
