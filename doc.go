// Package swapnet constructs and costs parametrized quantum swap
// networks — sub-circuits that move register state between groups of
// qubits under index control, decomposed to minimize the expensive
// non-Clifford gate count rather than naively.
//
// 🚀 What is swapnet?
//
//	A library of composable swap-network operators with exact resource
//	accounting:
//		• Core primitives: registers, signatures, bloqs, and a linear-wire
//		  composite builder
//		• CSwapApprox: approximate controlled swap at 4·n T gates, a 4×
//		  saving over the exact construction
//		• SwapWithZero: index-controlled relocation of one of many data
//		  registers into slot 0, multi-dimensional indices included
//		• MultiplexedCSwap: unary-iteration multiplexed swap with sparse
//		  iteration lengths and external controls
//		• Call-graph expansion: memoized recursive costing with pluggable
//		  generalizers and symbolic bit-widths
//		• Classical evaluation: basis-state semantics and permutation
//		  matrix export for small operators
//
// ✨ Why choose swapnet?
//
//   - Exact closed-form costs — decompositions reproduce their declared
//     T and Toffoli counts, concrete or symbolic
//   - Linear wires enforced — non-duplicated, non-dropped register flow
//     checked at build time, not discovered downstream
//   - Value-typed bloqs — equal parameters mean one shared call-graph
//     node, never a re-expansion
//
// Everything is organized under focused subpackages:
//
//	symb/      — symbolic positive-integer arithmetic for widths and counts
//	core/      — Register, Signature, Bloq, Composite and the wire builder
//	gates/     — leaf gates and register bookkeeping (split/join)
//	cswap/     — the approximate controlled swap
//	swapzero/  — the swap-with-zero selection network
//	muxswap/   — the unary-iteration multiplexed swap
//	callgraph/ — cost estimation over recursive decompositions
//	classical/ — basis-state evaluation and matrix export
//	cmd/       — the swapnet resource-report CLI
//
// Quick example:
//
//	swz, _ := swapzero.New1D(symb.I(8), symb.I(32), symb.I(4))
//	_, sigma, _ := callgraph.Expand(swz)
//	fmt.Println(sigma.TCount()) // 384: 3 swaps × 32 qubits × 4 T
//
// See each subpackage's doc.go for the full contracts.
package swapnet
