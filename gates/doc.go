// Package gates provides the leaf primitives swap networks bottom out in,
// plus the register bookkeeping operations (Split, Join) that retype wires
// without acting on them.
//
// Leaves declare their own costs through the Countable capability instead
// of decomposing: TGate counts as one T, Toffoli and RelPhaseToffoli as
// four T each (one Toffoli-equivalent), Clifford gates as zero. All leaves
// with a computational-basis action implement the Classical capability so
// composites built from them can be evaluated on basis states.
//
// Bookkeeping operations carry no cost at all; the callgraph package ships
// a generalizer that collapses them out of reported ledgers.
package gates
