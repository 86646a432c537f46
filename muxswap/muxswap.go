package muxswap

import (
	"fmt"

	"github.com/qbitops/swapnet/core"
	"github.com/qbitops/swapnet/cswap"
	"github.com/qbitops/swapnet/gates"
	"github.com/qbitops/swapnet/symb"
)

// MultiplexedCSwap exchanges the data register addressed by a selection
// index with a dedicated output register, optionally gated by external
// control qubits. Unlike SwapWithZero it never reuses a data slot as the
// destination and its iteration length is declared separately from the
// selection width.
type MultiplexedCSwap struct {
	selBits    symb.Value
	iterLen    symb.Value
	targetBits symb.Value
	nControls  int
}

// New validates parameters and returns the operator.
//
// selBits and targetBits must be known-positive, nControls non-negative,
// and the iteration length L must satisfy 1 ≤ L ≤ 2^selBits whenever both
// sides are concrete. Violations wrap core.ErrConstruction.
func New(selBits, iterLen, targetBits symb.Value, nControls int) (*MultiplexedCSwap, error) {
	if !selBits.KnownPositive() {
		return nil, fmt.Errorf("%w: MultiplexedCSwap selection width %s is not known-positive", core.ErrConstruction, selBits)
	}
	if !targetBits.KnownPositive() {
		return nil, fmt.Errorf("%w: MultiplexedCSwap target bit-width %s is not known-positive", core.ErrConstruction, targetBits)
	}
	if nControls < 0 {
		return nil, fmt.Errorf("%w: MultiplexedCSwap control count %d is negative", core.ErrConstruction, nControls)
	}
	if !iterLen.KnownPositive() {
		return nil, fmt.Errorf("%w: MultiplexedCSwap iteration length %s is not known-positive", core.ErrConstruction, iterLen)
	}
	l, errL := iterLen.Int()
	s, errS := selBits.Int()
	if errL == nil && errS == nil && (s >= 63 || l > 1<<uint(s)) {
		return nil, fmt.Errorf("%w: MultiplexedCSwap iterates %d branches over %d selection qubit(s)",
			core.ErrConstruction, l, s)
	}

	return &MultiplexedCSwap{selBits: selBits, iterLen: iterLen, targetBits: targetBits, nControls: nControls}, nil
}

// Must is New that panics on invalid parameters.
func Must(selBits, iterLen, targetBits symb.Value, nControls int) *MultiplexedCSwap {
	m, err := New(selBits, iterLen, targetBits, nControls)
	if err != nil {
		panic(err)
	}

	return m
}

// Name implements core.Bloq.
func (m *MultiplexedCSwap) Name() string { return "MultiplexedCSwap" }

// IterLen returns the iteration length L.
func (m *MultiplexedCSwap) IterLen() symb.Value { return m.iterLen }

// TargetBits returns the data register width.
func (m *MultiplexedCSwap) TargetBits() symb.Value { return m.targetBits }

// Signature implements core.Bloq: external controls, the selection
// register, the L addressed data registers and the output register, all
// pass-through.
func (m *MultiplexedCSwap) Signature() core.Signature {
	regs := make([]core.Register, 0, 4)
	if m.nControls > 0 {
		regs = append(regs, core.MustRegister("controls", symb.One(), core.WithShape(symb.I(int64(m.nControls)))))
	}
	regs = append(regs,
		core.MustRegister("selection", m.selBits),
		core.MustRegister("targets", m.targetBits, core.WithShape(m.iterLen)),
		core.MustRegister("output", m.targetBits),
	)

	return core.MustSignature(regs...)
}

// Key implements core.Bloq.
func (m *MultiplexedCSwap) Key() string {
	return fmt.Sprintf("MultiplexedCSwap{sel=%s,L=%s,n=%s,ctrl=%d}", m.selBits, m.iterLen, m.targetBits, m.nControls)
}

// PhaseContract implements core.Phased: the leaf swaps are approximate.
func (m *MultiplexedCSwap) PhaseContract() core.PhaseContract { return core.PhaseRelative }

// cliffordDegenerate reports the one closed-form corner: a single
// uncontrolled branch, which is a plain register swap.
func (m *MultiplexedCSwap) cliffordDegenerate() bool {
	l, err := m.iterLen.Int()

	return err == nil && l == 1 && m.nControls == 0
}

// Callees implements core.Countable. Per activated branch one
// CSwapApprox against the output register, plus the unary-iteration
// ladder and its free uncompute; the Toffoli-equivalent total is
// L·n_b + L − 2 + n_c.
func (m *MultiplexedCSwap) Callees() ([]core.Call, error) {
	if m.cliffordDegenerate() {
		swap, err := gates.NewSwap(m.targetBits)
		if err != nil {
			return nil, err
		}

		return []core.Call{{Bloq: swap, Count: symb.One()}}, nil
	}

	ladder, err := NewUnaryLadder(m.selBits, m.iterLen, m.nControls)
	if err != nil {
		return nil, err
	}

	return []core.Call{
		{Bloq: ladder, Count: symb.One()},
		{Bloq: cswap.Must(m.targetBits), Count: m.iterLen},
		{Bloq: ladder.Adjoint(), Count: symb.One()},
	}, nil
}

// TCount declares the aggregate non-Clifford cost,
// 4·(L·n_b + L − 2 + n_c) T gates.
func (m *MultiplexedCSwap) TCount() symb.Value {
	if m.cliffordDegenerate() {
		return symb.Zero()
	}

	return m.iterLen.Mul(m.targetBits).
		Add(m.iterLen).
		Sub(symb.I(2)).
		Add(symb.I(int64(m.nControls))).
		MulInt(4)
}

// Decompose implements core.Bloq: compute the per-leaf flags with the
// unary ladder, apply one flag-controlled CSwapApprox per branch against
// the output register, then uncompute the flags. The iteration length
// must be concrete; selection and target widths may stay symbolic.
func (m *MultiplexedCSwap) Decompose() (*core.Composite, error) {
	l, err := m.iterLen.AsInt()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrSymbolic, m.Key())
	}

	bb, ins, err := core.FromSignature(m.Signature())
	if err != nil {
		return nil, err
	}

	if m.cliffordDegenerate() {
		swap, errSwap := gates.NewSwap(m.targetBits)
		if errSwap != nil {
			return nil, errSwap
		}
		outs, errAdd := bb.Add(swap, map[string][]core.Port{
			"x": {ins["targets"][0]},
			"y": {ins["output"][0]},
		})
		if errAdd != nil {
			return nil, errAdd
		}

		return bb.Finalize(map[string][]core.Port{
			"selection": ins["selection"],
			"targets":   outs["x"],
			"output":    outs["y"],
		})
	}

	ladder, err := NewUnaryLadder(m.selBits, m.iterLen, m.nControls)
	if err != nil {
		return nil, err
	}

	// 1. Compute the flags.
	ladderIns := map[string][]core.Port{"selection": ins["selection"]}
	if m.nControls > 0 {
		ladderIns["controls"] = ins["controls"]
	}
	outs, err := bb.Add(ladder, ladderIns)
	if err != nil {
		return nil, err
	}
	selection := outs["selection"]
	controls := outs["controls"]
	flags := outs["flags"]

	// 2. One flag-controlled approximate swap per branch.
	targets := ins["targets"]
	output := ins["output"][0]
	swap := cswap.Must(m.targetBits)
	for leaf := 0; leaf < l; leaf++ {
		swapOuts, errAdd := bb.Add(swap, map[string][]core.Port{
			"ctrl": {flags[leaf]},
			"x":    {targets[leaf]},
			"y":    {output},
		})
		if errAdd != nil {
			return nil, errAdd
		}
		flags[leaf] = swapOuts["ctrl"][0]
		targets[leaf] = swapOuts["x"][0]
		output = swapOuts["y"][0]
	}

	// 3. Uncompute the flags.
	adjIns := map[string][]core.Port{"selection": selection, "flags": flags}
	if m.nControls > 0 {
		adjIns["controls"] = controls
	}
	outs, err = bb.Add(ladder.Adjoint(), adjIns)
	if err != nil {
		return nil, err
	}

	finalOuts := map[string][]core.Port{
		"selection": outs["selection"],
		"targets":   targets,
		"output":    {output},
	}
	if m.nControls > 0 {
		finalOuts["controls"] = outs["controls"]
	}

	return bb.Finalize(finalOuts)
}

// Apply implements core.Classical: when every control is set and the
// selection value addresses a declared branch, exchange that branch with
// the output register; otherwise every register passes through unchanged.
// Selection values at or beyond L activate no flag.
func (m *MultiplexedCSwap) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	l, err := m.iterLen.Int()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrSymbolic, m.Key())
	}

	out := map[string][]uint64{"selection": {vals["selection"][0]}}
	active := uint64(1)
	if m.nControls > 0 {
		out["controls"] = append([]uint64(nil), vals["controls"]...)
		for _, c := range vals["controls"] {
			active &= c
		}
	}

	targets := append([]uint64(nil), vals["targets"]...)
	output := vals["output"][0]
	sel := vals["selection"][0]
	if active == 1 && sel < uint64(l) {
		targets[sel], output = output, targets[sel]
	}
	out["targets"] = targets
	out["output"] = []uint64{output}

	return out, nil
}
