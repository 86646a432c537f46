package muxswap

import (
	"fmt"

	"github.com/qbitops/swapnet/core"
	"github.com/qbitops/swapnet/gates"
	"github.com/qbitops/swapnet/symb"
)

// UnaryLadder walks a selection register bit by bit and computes one
// unit-width flag per leaf index: flags[l] is set exactly when the
// selection value equals l and every external control is set. The ladder
// is a leaf here; its declared Toffoli cost is L − 2 + n_c.
type UnaryLadder struct {
	selBits   symb.Value
	iterLen   symb.Value
	nControls int
}

// NewUnaryLadder validates parameters and returns the compute-side
// ladder. A single-branch ladder (L = 1) needs at least one control to
// have anything to compute; that case and L = 0 wrap core.ErrConstruction.
func NewUnaryLadder(selBits, iterLen symb.Value, nControls int) (*UnaryLadder, error) {
	if !selBits.KnownPositive() {
		return nil, fmt.Errorf("%w: UnaryLadder selection width %s is not known-positive", core.ErrConstruction, selBits)
	}
	if !iterLen.KnownPositive() {
		return nil, fmt.Errorf("%w: UnaryLadder iteration length %s is not known-positive", core.ErrConstruction, iterLen)
	}
	if nControls < 0 {
		return nil, fmt.Errorf("%w: UnaryLadder control count %d is negative", core.ErrConstruction, nControls)
	}
	if l, err := iterLen.Int(); err == nil && l == 1 && nControls == 0 {
		return nil, fmt.Errorf("%w: UnaryLadder over a single uncontrolled branch computes nothing", core.ErrConstruction)
	}

	return &UnaryLadder{selBits: selBits, iterLen: iterLen, nControls: nControls}, nil
}

// Name implements core.Bloq.
func (u *UnaryLadder) Name() string { return "UnaryLadder" }

// Signature implements core.Bloq: pass-through controls and selection,
// plus the freshly computed flag register on the right boundary.
func (u *UnaryLadder) Signature() core.Signature {
	regs := make([]core.Register, 0, 3)
	if u.nControls > 0 {
		regs = append(regs, core.MustRegister("controls", symb.One(), core.WithShape(symb.I(int64(u.nControls)))))
	}
	regs = append(regs,
		core.MustRegister("selection", u.selBits),
		core.MustRegister("flags", symb.One(), core.WithSide(core.SideRight), core.WithShape(u.iterLen)),
	)

	return core.MustSignature(regs...)
}

// Decompose implements core.Bloq.
func (u *UnaryLadder) Decompose() (*core.Composite, error) {
	return nil, fmt.Errorf("%w: UnaryLadder", core.ErrAtomic)
}

// Key implements core.Bloq.
func (u *UnaryLadder) Key() string {
	return fmt.Sprintf("UnaryLadder{sel=%s,L=%s,ctrl=%d}", u.selBits, u.iterLen, u.nControls)
}

// ladderToffolis is the unary-iteration Toffoli budget: L − 2 to fan the
// selection out over L leaves, plus one per external control folded into
// the ladder root.
func (u *UnaryLadder) ladderToffolis() symb.Value {
	return u.iterLen.Sub(symb.I(2)).Add(symb.I(int64(u.nControls)))
}

// Callees implements core.Countable.
func (u *UnaryLadder) Callees() ([]core.Call, error) {
	n := u.ladderToffolis()
	if n.IsConcrete() {
		if v, err := n.Int(); err == nil && v == 0 {
			// A two-leaf uncontrolled ladder is pure Clifford.
			return nil, nil
		}
	}

	return []core.Call{{Bloq: gates.Toffoli{}, Count: n}}, nil
}

// Apply implements core.Classical.
func (u *UnaryLadder) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	l, err := u.iterLen.Int()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrSymbolic, u.Key())
	}

	out := map[string][]uint64{"selection": {vals["selection"][0]}}
	active := uint64(1)
	if u.nControls > 0 {
		out["controls"] = append([]uint64(nil), vals["controls"]...)
		for _, c := range vals["controls"] {
			active &= c
		}
	}

	flags := make([]uint64, l)
	sel := vals["selection"][0]
	if active == 1 && sel < uint64(l) {
		flags[sel] = 1
	}
	out["flags"] = flags

	return out, nil
}

// UnaryLadderAdjoint uncomputes the flag register of a matching
// UnaryLadder. The uncompute is measurement-based, so its declared
// Toffoli cost is zero.
type UnaryLadderAdjoint struct {
	selBits   symb.Value
	iterLen   symb.Value
	nControls int
}

// Adjoint returns the uncompute side of the ladder.
func (u *UnaryLadder) Adjoint() *UnaryLadderAdjoint {
	return &UnaryLadderAdjoint{selBits: u.selBits, iterLen: u.iterLen, nControls: u.nControls}
}

// Name implements core.Bloq.
func (u *UnaryLadderAdjoint) Name() string { return "UnaryLadderAdjoint" }

// Signature implements core.Bloq: the mirror of UnaryLadder, consuming
// the flag register on the left boundary.
func (u *UnaryLadderAdjoint) Signature() core.Signature {
	regs := make([]core.Register, 0, 3)
	if u.nControls > 0 {
		regs = append(regs, core.MustRegister("controls", symb.One(), core.WithShape(symb.I(int64(u.nControls)))))
	}
	regs = append(regs,
		core.MustRegister("selection", u.selBits),
		core.MustRegister("flags", symb.One(), core.WithSide(core.SideLeft), core.WithShape(u.iterLen)),
	)

	return core.MustSignature(regs...)
}

// Decompose implements core.Bloq.
func (u *UnaryLadderAdjoint) Decompose() (*core.Composite, error) {
	return nil, fmt.Errorf("%w: UnaryLadderAdjoint", core.ErrAtomic)
}

// Key implements core.Bloq.
func (u *UnaryLadderAdjoint) Key() string {
	return fmt.Sprintf("UnaryLadderAdjoint{sel=%s,L=%s,ctrl=%d}", u.selBits, u.iterLen, u.nControls)
}

// Callees implements core.Countable: measurement plus classically
// controlled Clifford fixups, no Toffoli-equivalents.
func (u *UnaryLadderAdjoint) Callees() ([]core.Call, error) { return nil, nil }

// Apply implements core.Classical, checking that the consumed flags are
// the ones the matching compute side would produce.
func (u *UnaryLadderAdjoint) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	fwd := &UnaryLadder{selBits: u.selBits, iterLen: u.iterLen, nControls: u.nControls}
	expect, err := fwd.Apply(vals)
	if err != nil {
		return nil, err
	}
	for i, f := range expect["flags"] {
		if vals["flags"][i] != f {
			return nil, fmt.Errorf("%w: flag %d does not match its compute side", core.ErrDecomposition, i)
		}
	}

	out := map[string][]uint64{"selection": {vals["selection"][0]}}
	if u.nControls > 0 {
		out["controls"] = append([]uint64(nil), vals["controls"]...)
	}

	return out, nil
}
