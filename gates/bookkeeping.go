package gates

import (
	"fmt"

	"github.com/qbitops/swapnet/core"
	"github.com/qbitops/swapnet/symb"
)

// Split retypes one width-n wire into n unit wires, most significant qubit
// first. It performs no operation on the state; it exists so decompositions
// can address individual qubits of a register. Cost-free bookkeeping.
type Split struct {
	bits symb.Value
}

// NewSplit validates the width and returns the splitter.
func NewSplit(bits symb.Value) (Split, error) {
	if !bits.KnownPositive() {
		return Split{}, fmt.Errorf("%w: Split bit-width %s is not known-positive", core.ErrConstruction, bits)
	}

	return Split{bits: bits}, nil
}

// MustSplit is NewSplit for widths already validated by the caller.
func MustSplit(bits symb.Value) Split {
	s, err := NewSplit(bits)
	if err != nil {
		panic(err)
	}

	return s
}

func (s Split) Name() string { return "Split" }

// Bits returns the width of the incoming wire.
func (s Split) Bits() symb.Value { return s.bits }

func (s Split) Signature() core.Signature {
	return core.MustSignature(
		core.MustRegister("reg", s.bits, core.WithSide(core.SideLeft)),
		core.MustRegister("reg", symb.One(), core.WithSide(core.SideRight), core.WithShape(s.bits)),
	)
}

func (s Split) Decompose() (*core.Composite, error) {
	return nil, fmt.Errorf("%w: Split", core.ErrAtomic)
}

func (s Split) Key() string { return fmt.Sprintf("Split{n=%s}", s.bits) }

// Apply implements core.Classical: the register value fans out into bits,
// index 0 carrying the most significant qubit.
func (s Split) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	n, err := s.bits.AsInt()
	if err != nil {
		return nil, fmt.Errorf("%w: Split", core.ErrSymbolic)
	}
	v := vals["reg"][0]
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		out[i] = (v >> uint(n-1-i)) & 1
	}

	return map[string][]uint64{"reg": out}, nil
}

// Join is the inverse of Split: n unit wires fuse back into one width-n
// wire, index 0 taken as the most significant qubit.
type Join struct {
	bits symb.Value
}

// NewJoin validates the width and returns the joiner.
func NewJoin(bits symb.Value) (Join, error) {
	if !bits.KnownPositive() {
		return Join{}, fmt.Errorf("%w: Join bit-width %s is not known-positive", core.ErrConstruction, bits)
	}

	return Join{bits: bits}, nil
}

// MustJoin is NewJoin for widths already validated by the caller.
func MustJoin(bits symb.Value) Join {
	j, err := NewJoin(bits)
	if err != nil {
		panic(err)
	}

	return j
}

func (j Join) Name() string { return "Join" }

// Bits returns the width of the outgoing wire.
func (j Join) Bits() symb.Value { return j.bits }

func (j Join) Signature() core.Signature {
	return core.MustSignature(
		core.MustRegister("reg", symb.One(), core.WithSide(core.SideLeft), core.WithShape(j.bits)),
		core.MustRegister("reg", j.bits, core.WithSide(core.SideRight)),
	)
}

func (j Join) Decompose() (*core.Composite, error) {
	return nil, fmt.Errorf("%w: Join", core.ErrAtomic)
}

func (j Join) Key() string { return fmt.Sprintf("Join{n=%s}", j.bits) }

// Apply implements core.Classical.
func (j Join) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	bits := vals["reg"]
	var v uint64
	for _, b := range bits {
		v = v<<1 | (b & 1)
	}

	return map[string][]uint64{"reg": {v}}, nil
}

// IsBookkeeping reports whether b is pure register bookkeeping (Split or
// Join): an identity on the state that only retypes wires.
func IsBookkeeping(b core.Bloq) bool {
	switch b.(type) {
	case Split, Join:
		return true
	default:
		return false
	}
}
