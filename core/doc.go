// Package core defines the central value types of swapnet: Register,
// Signature, Bloq, and the Composite circuit with its linear-wire Builder.
//
// A Bloq is an immutable, parameter-valued description of a unitary
// operation. It declares a Signature (named, typed quantum registers) and
// either a decomposition into a Composite of child bloqs or — for leaf
// primitives — a declared cost via the Countable capability. Two bloqs with
// identical parameters are interchangeable; Intern returns the canonical
// instance for a given content key so call graphs share equal nodes.
//
// A Composite is a frozen directed acyclic graph of bloq instances joined by
// wires. Wires are linear: every produced port is consumed exactly once,
// either by a downstream instance or by the circuit's right boundary. The
// Builder enforces linearity and width agreement incrementally, so a
// finalized Composite is structurally valid by construction.
//
// All operations are pure transformations over immutable values; there is no
// shared mutable state beyond the intern cache, which is safe for concurrent
// use.
//
// Errors:
//
//	ErrConstruction  - malformed or out-of-domain construction parameters.
//	ErrDecomposition - wire/width/linearity invariant violated while building.
//	ErrAtomic        - the bloq is a leaf and has no decomposition.
//	ErrSymbolic      - parameters are symbolic; no concrete wiring exists.
package core
