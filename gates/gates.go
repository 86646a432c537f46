package gates

import (
	"fmt"

	"github.com/qbitops/swapnet/core"
	"github.com/qbitops/swapnet/symb"
)

// TGate is the elementary non-Clifford phase gate; the unit of the primary
// cost metric. Its computational-basis action is the identity (T applies a
// phase only).
type TGate struct{}

// Name implements core.Bloq.
func (TGate) Name() string { return "T" }

// Signature implements core.Bloq.
func (TGate) Signature() core.Signature {
	return core.MustSignature(core.MustRegister("q", symb.One()))
}

// Decompose implements core.Bloq; T is a leaf.
func (TGate) Decompose() (*core.Composite, error) {
	return nil, fmt.Errorf("%w: T", core.ErrAtomic)
}

// Key implements core.Bloq.
func (TGate) Key() string { return "T" }

// TCount declares the non-Clifford cost.
func (TGate) TCount() symb.Value { return symb.One() }

// Apply implements core.Classical: identity on basis states.
func (TGate) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	return map[string][]uint64{"q": {vals["q"][0]}}, nil
}

// XGate is the Pauli-X bit flip.
type XGate struct{}

func (XGate) Name() string { return "X" }

func (XGate) Signature() core.Signature {
	return core.MustSignature(core.MustRegister("q", symb.One()))
}

func (XGate) Decompose() (*core.Composite, error) {
	return nil, fmt.Errorf("%w: X", core.ErrAtomic)
}

func (XGate) Key() string { return "X" }

func (XGate) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	return map[string][]uint64{"q": {vals["q"][0] ^ 1}}, nil
}

// CNOT is the controlled bit flip; Clifford, hence free under the T metric.
type CNOT struct{}

func (CNOT) Name() string { return "CNOT" }

func (CNOT) Signature() core.Signature {
	return core.MustSignature(
		core.MustRegister("ctrl", symb.One()),
		core.MustRegister("target", symb.One()),
	)
}

func (CNOT) Decompose() (*core.Composite, error) {
	return nil, fmt.Errorf("%w: CNOT", core.ErrAtomic)
}

func (CNOT) Key() string { return "CNOT" }

func (CNOT) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	c, t := vals["ctrl"][0], vals["target"][0]

	return map[string][]uint64{"ctrl": {c}, "target": {t ^ c}}, nil
}

// Toffoli is the doubly-controlled bit flip, the Toffoli-equivalent cost
// unit: four T gates.
type Toffoli struct{}

func (Toffoli) Name() string { return "Toffoli" }

func (Toffoli) Signature() core.Signature {
	return core.MustSignature(
		core.MustRegister("ctrl", symb.One(), core.WithShape(symb.I(2))),
		core.MustRegister("target", symb.One()),
	)
}

func (Toffoli) Decompose() (*core.Composite, error) {
	return nil, fmt.Errorf("%w: Toffoli", core.ErrAtomic)
}

func (Toffoli) Key() string { return "Toffoli" }

func (Toffoli) TCount() symb.Value { return symb.I(4) }

func (Toffoli) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	c := vals["ctrl"]
	t := vals["target"][0]

	return map[string][]uint64{
		"ctrl":   {c[0], c[1]},
		"target": {t ^ (c[0] & c[1])},
	}, nil
}

// RelPhaseToffoli is the Toffoli up to a relative phase in the
// computational basis. Same four-T cost, same classical action; the phase
// deviation is declared through the PhaseContract so downstream checks can
// distinguish it from the exact gate.
type RelPhaseToffoli struct{}

func (RelPhaseToffoli) Name() string { return "RelPhaseToffoli" }

func (RelPhaseToffoli) Signature() core.Signature {
	return core.MustSignature(
		core.MustRegister("ctrl", symb.One(), core.WithShape(symb.I(2))),
		core.MustRegister("target", symb.One()),
	)
}

func (RelPhaseToffoli) Decompose() (*core.Composite, error) {
	return nil, fmt.Errorf("%w: RelPhaseToffoli", core.ErrAtomic)
}

func (RelPhaseToffoli) Key() string { return "RelPhaseToffoli" }

func (RelPhaseToffoli) TCount() symb.Value { return symb.I(4) }

func (RelPhaseToffoli) PhaseContract() core.PhaseContract { return core.PhaseRelative }

func (RelPhaseToffoli) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	c := vals["ctrl"]
	t := vals["target"][0]

	return map[string][]uint64{
		"ctrl":   {c[0], c[1]},
		"target": {t ^ (c[0] & c[1])},
	}, nil
}

// Swap exchanges two equally wide registers; Clifford (three CNOTs per
// qubit pair), zero T cost.
type Swap struct {
	bits symb.Value
}

// NewSwap validates the width and returns the register swap.
func NewSwap(bits symb.Value) (Swap, error) {
	if !bits.KnownPositive() {
		return Swap{}, fmt.Errorf("%w: Swap bit-width %s is not known-positive", core.ErrConstruction, bits)
	}

	return Swap{bits: bits}, nil
}

func (s Swap) Name() string { return "Swap" }

// Bits returns the register width.
func (s Swap) Bits() symb.Value { return s.bits }

func (s Swap) Signature() core.Signature {
	return core.MustSignature(
		core.MustRegister("x", s.bits),
		core.MustRegister("y", s.bits),
	)
}

func (s Swap) Decompose() (*core.Composite, error) {
	return nil, fmt.Errorf("%w: Swap", core.ErrAtomic)
}

func (s Swap) Key() string { return fmt.Sprintf("Swap{n=%s}", s.bits) }

// Callees declares the Clifford realization: three CNOTs per qubit pair.
func (s Swap) Callees() ([]core.Call, error) {
	return []core.Call{{Bloq: CNOT{}, Count: s.bits.MulInt(3)}}, nil
}

func (s Swap) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	return map[string][]uint64{"x": {vals["y"][0]}, "y": {vals["x"][0]}}, nil
}
