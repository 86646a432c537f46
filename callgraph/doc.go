// Package callgraph expands a bloq's decomposition into a call graph and
// aggregates leaf-operation counts.
//
// Expansion is breadth-first down to a configurable depth. Children come
// from the bloq's own count declaration when it has one, otherwise from
// tallying its structural decomposition; atomic bloqs and bloqs whose
// parameters are still symbolic become cost leaves, as does any node at
// the depth limit. Equal-by-value bloqs share a single graph node and
// are expanded once.
//
// A generalizer rewrites each bloq before it is recorded, typically to
// collapse register bookkeeping or Clifford operations so they do not
// pollute reported costs.
package callgraph
