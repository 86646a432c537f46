package cswap

import (
	"fmt"

	"github.com/qbitops/swapnet/core"
	"github.com/qbitops/swapnet/gates"
	"github.com/qbitops/swapnet/symb"
)

// SwapPairApprox is the single-qubit-pair approximate controlled swap: the
// fixed-depth gadget realizing, up to a relative phase, a controlled
// exchange of two qubits with exactly four T gates. Structurally it is two
// conjugating CNOTs around one relative-phase Toffoli.
type SwapPairApprox struct{}

// Name implements core.Bloq.
func (SwapPairApprox) Name() string { return "SwapPairApprox" }

// Signature implements core.Bloq.
func (SwapPairApprox) Signature() core.Signature {
	return core.MustSignature(
		core.MustRegister("ctrl", symb.One()),
		core.MustRegister("x", symb.One()),
		core.MustRegister("y", symb.One()),
	)
}

// Decompose implements core.Bloq; the gadget is a declared-cost leaf.
func (SwapPairApprox) Decompose() (*core.Composite, error) {
	return nil, fmt.Errorf("%w: SwapPairApprox", core.ErrAtomic)
}

// Key implements core.Bloq.
func (SwapPairApprox) Key() string { return "SwapPairApprox" }

// Callees declares the gadget internals: CNOT(y,x) · RelPhaseToffoli(ctrl,x → y) · CNOT(y,x).
func (SwapPairApprox) Callees() ([]core.Call, error) {
	return []core.Call{
		{Bloq: gates.CNOT{}, Count: symb.I(2)},
		{Bloq: gates.RelPhaseToffoli{}, Count: symb.One()},
	}, nil
}

// TCount declares the aggregate non-Clifford cost for depth-limited ledgers.
func (SwapPairApprox) TCount() symb.Value { return symb.I(4) }

// PhaseContract implements core.Phased.
func (SwapPairApprox) PhaseContract() core.PhaseContract { return core.PhaseRelative }

// Apply implements core.Classical: exchange x and y when ctrl is set.
func (SwapPairApprox) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	c, x, y := vals["ctrl"][0], vals["x"][0], vals["y"][0]
	if c&1 == 1 {
		x, y = y, x
	}

	return map[string][]uint64{"ctrl": {c}, "x": {x}, "y": {y}}, nil
}

// CSwapApprox is the approximate controlled swap of two n-qubit registers:
// identity for ctrl=0, full register exchange for ctrl=1, correct up to a
// uniform relative phase, at exactly 4·n T gates regardless of input state.
type CSwapApprox struct {
	bits symb.Value
}

// New validates the width (positive integer or provably positive symbolic
// value) and returns the operator. Violations wrap core.ErrConstruction.
func New(bits symb.Value) (*CSwapApprox, error) {
	if !bits.KnownPositive() {
		return nil, fmt.Errorf("%w: CSwapApprox bit-width %s is not known-positive", core.ErrConstruction, bits)
	}

	return &CSwapApprox{bits: bits}, nil
}

// Must is New for widths already validated by the caller; panics otherwise.
func Must(bits symb.Value) *CSwapApprox {
	c, err := New(bits)
	if err != nil {
		panic(err)
	}

	return c
}

// Name implements core.Bloq.
func (c *CSwapApprox) Name() string { return "CSwapApprox" }

// Bits returns the data register width.
func (c *CSwapApprox) Bits() symb.Value { return c.bits }

// Signature implements core.Bloq: ctrl(1), x(n), y(n), all pass-through.
func (c *CSwapApprox) Signature() core.Signature {
	return core.MustSignature(
		core.MustRegister("ctrl", symb.One()),
		core.MustRegister("x", c.bits),
		core.MustRegister("y", c.bits),
	)
}

// Key implements core.Bloq.
func (c *CSwapApprox) Key() string { return fmt.Sprintf("CSwapApprox{n=%s}", c.bits) }

// PhaseContract implements core.Phased.
func (c *CSwapApprox) PhaseContract() core.PhaseContract { return core.PhaseRelative }

// Callees declares n pair gadgets; exact even when n is symbolic, which is
// how a symbolic width still resolves to the 4·n cost expression.
func (c *CSwapApprox) Callees() ([]core.Call, error) {
	return []core.Call{{Bloq: SwapPairApprox{}, Count: c.bits}}, nil
}

// TCount declares the aggregate non-Clifford cost for depth-limited ledgers.
func (c *CSwapApprox) TCount() symb.Value { return c.bits.MulInt(4) }

// Decompose implements core.Bloq: split both registers, thread the control
// through n pair gadgets, rejoin. Symbolic widths admit no concrete wiring
// and return ErrSymbolic.
func (c *CSwapApprox) Decompose() (*core.Composite, error) {
	n, err := c.bits.AsInt()
	if err != nil {
		return nil, fmt.Errorf("%w: CSwapApprox{n=%s}", core.ErrSymbolic, c.bits)
	}

	bb, ins, err := core.FromSignature(c.Signature())
	if err != nil {
		return nil, err
	}
	ctrl := ins["ctrl"][0]

	// 1. Split both data registers into qubit wires.
	split := gates.MustSplit(c.bits)
	xOuts, err := bb.Add(split, map[string][]core.Port{"reg": ins["x"]})
	if err != nil {
		return nil, err
	}
	xs := xOuts["reg"]
	yOuts, err := bb.Add(split, map[string][]core.Port{"reg": ins["y"]})
	if err != nil {
		return nil, err
	}
	ys := yOuts["reg"]

	// 2. One pair gadget per qubit index, control threaded through.
	for i := 0; i < n; i++ {
		outs, errAdd := bb.Add(SwapPairApprox{}, map[string][]core.Port{
			"ctrl": {ctrl},
			"x":    {xs[i]},
			"y":    {ys[i]},
		})
		if errAdd != nil {
			return nil, errAdd
		}
		ctrl, xs[i], ys[i] = outs["ctrl"][0], outs["x"][0], outs["y"][0]
	}

	// 3. Rejoin the data registers.
	join := gates.MustJoin(c.bits)
	xJoined, err := bb.Add(join, map[string][]core.Port{"reg": xs})
	if err != nil {
		return nil, err
	}
	yJoined, err := bb.Add(join, map[string][]core.Port{"reg": ys})
	if err != nil {
		return nil, err
	}

	return bb.Finalize(map[string][]core.Port{
		"ctrl": {ctrl},
		"x":    xJoined["reg"],
		"y":    yJoined["reg"],
	})
}

// Apply implements core.Classical: whole-register controlled exchange.
func (c *CSwapApprox) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	ctrl, x, y := vals["ctrl"][0], vals["x"][0], vals["y"][0]
	if ctrl&1 == 1 {
		x, y = y, x
	}

	return map[string][]uint64{"ctrl": {ctrl}, "x": {x}, "y": {y}}, nil
}
