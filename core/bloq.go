package core

import (
	"fmt"

	"github.com/qbitops/swapnet/symb"
)

// PhaseContract states how faithfully a bloq (or a composite built from
// bloqs) implements its ideal unitary.
type PhaseContract uint8

const (
	// PhaseExact means the implementation equals the ideal operator.
	PhaseExact PhaseContract = iota

	// PhaseRelative means the implementation equals the ideal operator up to
	// a known, bounded relative phase in the computational basis — uniform
	// over the data, never entangled with it, and absorbable downstream.
	PhaseRelative
)

// String returns the canonical name of the contract.
func (p PhaseContract) String() string {
	switch p {
	case PhaseExact:
		return "exact"
	case PhaseRelative:
		return "relative-phase"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Bloq is an immutable, value-typed description of a unitary operation.
//
// Implementations must be pure values: all methods deterministic, no hidden
// state, and Key() must be a canonical content key derived from the
// construction parameters, so that equal-parameter instances are
// interchangeable and shareable across call graphs.
type Bloq interface {
	// Name is the short human-readable operation name (e.g. "CSwapApprox").
	Name() string

	// Signature describes the register interface.
	Signature() Signature

	// Decompose produces the bloq's definition as a Composite of children.
	// Leaf primitives return ErrAtomic; symbolically parametrized bloqs
	// without a concrete wiring return ErrSymbolic. Any other failure wraps
	// ErrDecomposition and indicates a bug in the decomposition rule.
	Decompose() (*Composite, error)

	// Key returns the canonical content key, e.g. "CSwapApprox{n=4}".
	// Two bloqs are interchangeable iff their keys are equal.
	Key() string
}

// Call is one parent→child edge of a call graph: a child bloq together with
// its multiplicity, which may be symbolic.
type Call struct {
	Bloq  Bloq
	Count symb.Value
}

// Countable is an optional Bloq capability declaring direct children with
// multiplicities without materializing a wiring. It is the cost path for
// symbolically parametrized bloqs and for leaves whose internal gate counts
// are declared rather than derived.
type Countable interface {
	Callees() ([]Call, error)
}

// Classical is an optional Bloq capability giving the bloq's action on
// computational basis states. Values map register names to flattened
// per-element unsigned values (one entry per shape element, row-major).
// Phases are outside the model; a PhaseRelative bloq's classical action is
// the phase-stripped permutation.
type Classical interface {
	Apply(vals map[string][]uint64) (map[string][]uint64, error)
}

// Phased is an optional Bloq capability declaring the phase contract.
// Bloqs without it are taken as PhaseExact.
type Phased interface {
	PhaseContract() PhaseContract
}

// PhaseOf returns the declared phase contract of b, defaulting to exact.
func PhaseOf(b Bloq) PhaseContract {
	if p, ok := b.(Phased); ok {
		return p.PhaseContract()
	}

	return PhaseExact
}
