package core

import (
	"fmt"

	"github.com/qbitops/swapnet/symb"
)

// Side declares on which boundary of a bloq a register appears.
type Side uint8

const (
	// SideThru registers appear on both the left (input) and right (output)
	// boundary; this is the default for unitary operations.
	SideThru Side = iota

	// SideLeft registers are consumed by the bloq and do not reappear on the
	// right boundary (e.g. a flag register being uncomputed).
	SideLeft

	// SideRight registers are produced by the bloq and have no left-boundary
	// counterpart (e.g. a freshly computed flag register).
	SideRight
)

// String returns the canonical short name of the side.
func (s Side) String() string {
	switch s {
	case SideThru:
		return "thru"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

// Register describes one named group of qubits in a bloq's interface:
// a bit-width (possibly symbolic), a boundary side, and an optional
// n-dimensional shape of equally-sized sub-registers. Registers are
// immutable after construction.
type Register struct {
	name  string
	bits  symb.Value
	side  Side
	shape []symb.Value // empty = scalar
}

// RegisterOption configures optional Register properties at construction.
type RegisterOption func(*Register)

// WithSide sets the boundary side (default SideThru).
func WithSide(side Side) RegisterOption {
	return func(r *Register) { r.side = side }
}

// WithShape declares the register as an n-dimensional array of sub-registers
// with the given per-axis counts.
func WithShape(dims ...symb.Value) RegisterOption {
	return func(r *Register) { r.shape = append([]symb.Value(nil), dims...) }
}

// NewRegister constructs a validated Register.
//
// Validation (all failures wrap ErrConstruction):
//   - name must be non-empty;
//   - bits must be a positive integer or provably positive symbolic value;
//   - every shape dimension must likewise be known-positive.
func NewRegister(name string, bits symb.Value, opts ...RegisterOption) (Register, error) {
	if name == "" {
		return Register{}, fmt.Errorf("%w: register name is empty", ErrConstruction)
	}
	if !bits.KnownPositive() {
		return Register{}, fmt.Errorf("%w: register %q bit-width %s is not known-positive", ErrConstruction, name, bits)
	}

	r := Register{name: name, bits: bits, side: SideThru}
	for _, opt := range opts {
		opt(&r)
	}

	for d, dim := range r.shape {
		if !dim.KnownPositive() {
			return Register{}, fmt.Errorf("%w: register %q shape dim %d = %s is not known-positive", ErrConstruction, name, d, dim)
		}
	}

	return r, nil
}

// MustRegister is NewRegister for statically valid parameter sets; it panics
// on validation failure. Intended for Signature() methods of bloqs whose
// parameters were already validated at bloq construction.
func MustRegister(name string, bits symb.Value, opts ...RegisterOption) Register {
	r, err := NewRegister(name, bits, opts...)
	if err != nil {
		panic(err)
	}

	return r
}

// Name returns the register name, unique within its Signature.
func (r Register) Name() string { return r.name }

// Bits returns the per-element bit-width.
func (r Register) Bits() symb.Value { return r.bits }

// Side returns the boundary side.
func (r Register) Side() Side { return r.side }

// Shape returns a copy of the shape dims; empty for scalar registers.
func (r Register) Shape() []symb.Value {
	if len(r.shape) == 0 {
		return nil
	}

	return append([]symb.Value(nil), r.shape...)
}

// IsScalar reports whether the register has no array shape.
func (r Register) IsScalar() bool { return len(r.shape) == 0 }

// NumElements returns the concrete flattened element count of the shape
// (1 for scalars). Symbolic dims yield ErrSymbolic.
func (r Register) NumElements() (int, error) {
	n := 1
	for _, dim := range r.shape {
		d, err := dim.AsInt()
		if err != nil {
			return 0, fmt.Errorf("%w: register %q has symbolic shape", ErrSymbolic, r.name)
		}
		n *= d
	}

	return n, nil
}

// TotalBits returns bits multiplied across the whole shape, symbolically.
func (r Register) TotalBits() symb.Value {
	total := r.bits
	for _, dim := range r.shape {
		total = total.Mul(dim)
	}

	return total
}

// Equal reports full structural equality of two registers.
func (r Register) Equal(o Register) bool {
	if r.name != o.name || r.side != o.side || !r.bits.Equal(o.bits) || len(r.shape) != len(o.shape) {
		return false
	}
	for i := range r.shape {
		if !r.shape[i].Equal(o.shape[i]) {
			return false
		}
	}

	return true
}

// String renders e.g. `targets[5]:2 (thru)` for diagnostics.
func (r Register) String() string {
	s := r.name
	for _, dim := range r.shape {
		s += fmt.Sprintf("[%s]", dim)
	}

	return fmt.Sprintf("%s:%s (%s)", s, r.bits, r.side)
}
