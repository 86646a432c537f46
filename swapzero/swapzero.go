package swapzero

import (
	"fmt"
	"strings"

	"github.com/qbitops/swapnet/core"
	"github.com/qbitops/swapnet/cswap"
	"github.com/qbitops/swapnet/gates"
	"github.com/qbitops/swapnet/symb"
)

// SwapWithZero relocates the data register addressed by a (possibly
// multi-dimensional) selection index into register slot 0. The state left
// in the remaining slots is the deterministic permutation produced by the
// swap schedule; see the package documentation.
type SwapWithZero struct {
	selBits    []symb.Value
	targetBits symb.Value
	nTargets   []symb.Value
}

// New validates parameters and returns the operator.
//
// selBits and nTargets must have equal, non-zero length (one entry per
// selection axis); targetBits and every per-axis entry must be
// known-positive; for concrete axes the register count must not exceed
// 2^selBits. Violations wrap core.ErrConstruction.
func New(selBits []symb.Value, targetBits symb.Value, nTargets []symb.Value) (*SwapWithZero, error) {
	if len(selBits) == 0 || len(selBits) != len(nTargets) {
		return nil, fmt.Errorf("%w: SwapWithZero needs matching selection/target axes, got %d vs %d",
			core.ErrConstruction, len(selBits), len(nTargets))
	}
	if !targetBits.KnownPositive() {
		return nil, fmt.Errorf("%w: SwapWithZero target bit-width %s is not known-positive", core.ErrConstruction, targetBits)
	}
	for d := range selBits {
		if !selBits[d].KnownPositive() {
			return nil, fmt.Errorf("%w: SwapWithZero selection width %s (axis %d) is not known-positive",
				core.ErrConstruction, selBits[d], d)
		}
		if !nTargets[d].KnownPositive() {
			return nil, fmt.Errorf("%w: SwapWithZero register count %s (axis %d) is not known-positive",
				core.ErrConstruction, nTargets[d], d)
		}
		b, errB := nTargets[d].Int()
		s, errS := selBits[d].Int()
		if errB == nil && errS == nil && (s >= 63 || b > 1<<uint(s)) {
			return nil, fmt.Errorf("%w: SwapWithZero axis %d addresses %d registers with %d selection qubit(s)",
				core.ErrConstruction, d, b, s)
		}
	}

	return &SwapWithZero{
		selBits:    append([]symb.Value(nil), selBits...),
		targetBits: targetBits,
		nTargets:   append([]symb.Value(nil), nTargets...),
	}, nil
}

// New1D is the common single-axis form.
func New1D(selBits, targetBits, nTargets symb.Value) (*SwapWithZero, error) {
	return New([]symb.Value{selBits}, targetBits, []symb.Value{nTargets})
}

// Name implements core.Bloq.
func (s *SwapWithZero) Name() string { return "SwapWithZero" }

// SelectionBits returns the per-axis selection widths.
func (s *SwapWithZero) SelectionBits() []symb.Value {
	return append([]symb.Value(nil), s.selBits...)
}

// TargetBits returns the data register width.
func (s *SwapWithZero) TargetBits() symb.Value { return s.targetBits }

// NTargets returns the per-axis register counts.
func (s *SwapWithZero) NTargets() []symb.Value {
	return append([]symb.Value(nil), s.nTargets...)
}

// selectionName names the axis-d selection register: a single axis keeps
// the plain name, multi-axis operators number the axes.
func (s *SwapWithZero) selectionName(d int) string {
	if len(s.selBits) == 1 {
		return "selection"
	}

	return fmt.Sprintf("selection%d", d)
}

// Signature implements core.Bloq: one selection register per axis, then the
// grid of target registers, all pass-through.
func (s *SwapWithZero) Signature() core.Signature {
	regs := make([]core.Register, 0, len(s.selBits)+1)
	for d := range s.selBits {
		regs = append(regs, core.MustRegister(s.selectionName(d), s.selBits[d]))
	}
	regs = append(regs, core.MustRegister("targets", s.targetBits, core.WithShape(s.nTargets...)))

	return core.MustSignature(regs...)
}

// Key implements core.Bloq.
func (s *SwapWithZero) Key() string {
	sel := make([]string, len(s.selBits))
	tgt := make([]string, len(s.nTargets))
	for d := range s.selBits {
		sel[d] = s.selBits[d].String()
		tgt[d] = s.nTargets[d].String()
	}

	return fmt.Sprintf("SwapWithZero{sel=[%s],n=%s,targets=[%s]}",
		strings.Join(sel, " "), s.targetBits, strings.Join(tgt, " "))
}

// PhaseContract implements core.Phased: built from approximate swaps.
func (s *SwapWithZero) PhaseContract() core.PhaseContract { return core.PhaseRelative }

// swapCount returns the symbolic number of CSwapApprox children:
// Σ_d (Π_{d'<d} n_d') · (n_d − 1), which telescopes to Π n_d − 1.
func (s *SwapWithZero) swapCount() symb.Value {
	total := symb.Zero()
	prefix := symb.One()
	for d := range s.nTargets {
		total = total.Add(prefix.Mul(s.nTargets[d].Sub(symb.One())))
		prefix = prefix.Mul(s.nTargets[d])
	}

	return total
}

// Callees implements core.Countable, exact for symbolic parameters too.
func (s *SwapWithZero) Callees() ([]core.Call, error) {
	return []core.Call{{Bloq: cswap.Must(s.targetBits), Count: s.swapCount()}}, nil
}

// TCount declares the aggregate non-Clifford cost for depth-limited
// ledgers: 4·targetBits per scheduled swap.
func (s *SwapWithZero) TCount() symb.Value {
	return s.swapCount().Mul(s.targetBits.MulInt(4))
}

// concreteAxes resolves the per-axis parameters to ints, or ErrSymbolic.
func (s *SwapWithZero) concreteAxes() (selBits, nTargets []int, err error) {
	selBits = make([]int, len(s.selBits))
	nTargets = make([]int, len(s.nTargets))
	for d := range s.selBits {
		if selBits[d], err = s.selBits[d].AsInt(); err != nil {
			return nil, nil, fmt.Errorf("%w: %s", core.ErrSymbolic, s.Key())
		}
		if nTargets[d], err = s.nTargets[d].AsInt(); err != nil {
			return nil, nil, fmt.Errorf("%w: %s", core.ErrSymbolic, s.Key())
		}
	}

	return selBits, nTargets, nil
}

// Decompose implements core.Bloq: split each selection register into
// qubits, run the swap schedule with each exchange controlled by its
// selection bit, rejoin. The target width may stay symbolic; only axis
// parameters must be concrete.
func (s *SwapWithZero) Decompose() (*core.Composite, error) {
	selBits, nTargets, err := s.concreteAxes()
	if err != nil {
		return nil, err
	}

	bb, ins, err := core.FromSignature(s.Signature())
	if err != nil {
		return nil, err
	}

	// 1. Split every selection register; bit j (LSB) lives at qubit index
	//    width-1-j of the big-endian split.
	selQubits := make([][]core.Port, len(selBits))
	for d := range selBits {
		outs, errAdd := bb.Add(gates.MustSplit(s.selBits[d]), map[string][]core.Port{
			"reg": ins[s.selectionName(d)],
		})
		if errAdd != nil {
			return nil, errAdd
		}
		selQubits[d] = outs["reg"]
	}

	// 2. Execute the schedule.
	targets := ins["targets"]
	swap := cswap.Must(s.targetBits)
	for _, op := range schedule(selBits, nTargets) {
		qubit := selBits[op.axis] - 1 - op.bit
		outs, errAdd := bb.Add(swap, map[string][]core.Port{
			"ctrl": {selQubits[op.axis][qubit]},
			"x":    {targets[op.low]},
			"y":    {targets[op.high]},
		})
		if errAdd != nil {
			return nil, errAdd
		}
		selQubits[op.axis][qubit] = outs["ctrl"][0]
		targets[op.low], targets[op.high] = outs["x"][0], outs["y"][0]
	}

	// 3. Rejoin the selection registers and close the boundary.
	finalOuts := map[string][]core.Port{"targets": targets}
	for d := range selBits {
		outs, errAdd := bb.Add(gates.MustJoin(s.selBits[d]), map[string][]core.Port{"reg": selQubits[d]})
		if errAdd != nil {
			return nil, errAdd
		}
		finalOuts[s.selectionName(d)] = outs["reg"]
	}

	return bb.Finalize(finalOuts)
}

// Apply implements core.Classical by running the identical swap schedule
// on basis-state values, so the classical action and the decomposition
// agree by construction, including the left-behind permutation.
func (s *SwapWithZero) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	selBits, nTargets, err := s.concreteAxes()
	if err != nil {
		return nil, err
	}

	out := make(map[string][]uint64, len(vals))
	sel := make([]uint64, len(selBits))
	for d := range selBits {
		sel[d] = vals[s.selectionName(d)][0]
		out[s.selectionName(d)] = []uint64{sel[d]}
	}

	targets := append([]uint64(nil), vals["targets"]...)
	for _, op := range schedule(selBits, nTargets) {
		if (sel[op.axis]>>uint(op.bit))&1 == 1 {
			targets[op.low], targets[op.high] = targets[op.high], targets[op.low]
		}
	}
	out["targets"] = targets

	return out, nil
}
