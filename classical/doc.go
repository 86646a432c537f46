// Package classical evaluates bloqs on computational basis states.
//
// Every register element is one uint64 value; a bloq's classical action
// maps input values to output values the way the corresponding unitary
// permutes basis states. Phases are dropped entirely, so the evaluation
// is a permutation semantics, not a simulation backend: a relative-phase
// contract on the evaluated bloq is surfaced through its signature and
// composites, never folded into the values.
//
// Evaluation either uses a bloq's own classical action or propagates
// values through one level of decomposition wire by wire; the two agree
// for every operator in this module, which is what the round-trip tests
// check. For small concrete bloqs the permutation can be exported as a
// dense 0/1 matrix over the computational basis.
package classical
