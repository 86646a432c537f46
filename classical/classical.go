package classical

import (
	"fmt"

	"github.com/qbitops/swapnet/core"
)

// Call evaluates b on the given basis-state values, one uint64 slice per
// left register (length = element count, scalars use length 1). Bloqs
// without a classical action of their own are evaluated through their
// decomposition. Missing or mis-sized value slices are rejected against
// the signature, never passed through.
func Call(b core.Bloq, vals map[string][]uint64) (map[string][]uint64, error) {
	if c, ok := b.(core.Classical); ok {
		if err := checkInputs(b.Signature().Lefts(), vals); err != nil {
			return nil, err
		}

		return c.Apply(vals)
	}

	return CallDecomposed(b, vals)
}

// checkInputs verifies one value slice of the right length per left
// register.
func checkInputs(regs []core.Register, vals map[string][]uint64) error {
	for _, reg := range regs {
		in, ok := vals[reg.Name()]
		if !ok {
			return fmt.Errorf("%w: no value for register %q", core.ErrDecomposition, reg.Name())
		}
		n, err := reg.NumElements()
		if err != nil {
			return err
		}
		if len(in) != n {
			return fmt.Errorf("%w: register %q carries %d element(s), got %d values",
				core.ErrDecomposition, reg.Name(), n, len(in))
		}
	}

	return nil
}

// CallDecomposed evaluates b by expanding exactly one decomposition level
// and propagating values along the composite's wires. Each child is
// evaluated via Call, so deeper structure resolves recursively.
func CallDecomposed(b core.Bloq, vals map[string][]uint64) (map[string][]uint64, error) {
	cb, err := b.Decompose()
	if err != nil {
		return nil, err
	}

	return EvalComposite(cb, vals)
}

// EvalComposite propagates basis-state values through a composite: seed
// the left boundary, evaluate instances in topological order, read the
// right boundary.
func EvalComposite(cb *core.Composite, vals map[string][]uint64) (map[string][]uint64, error) {
	// Producer endpoint → value. Every consumer endpoint has exactly one
	// incoming wire, so a To→From index resolves any input.
	held := map[core.Endpoint]uint64{}
	src := map[core.Endpoint]core.Endpoint{}
	for _, w := range cb.Wires() {
		src[w.To] = w.From
	}

	sig := cb.Signature()
	if err := checkInputs(sig.Lefts(), vals); err != nil {
		return nil, err
	}
	for _, reg := range sig.Lefts() {
		n, err := reg.NumElements()
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			held[core.Endpoint{Node: core.LeftEdge, Reg: reg.Name(), Idx: i}] = vals[reg.Name()][i]
		}
	}

	take := func(to core.Endpoint) (uint64, error) {
		from, ok := src[to]
		if !ok {
			return 0, fmt.Errorf("%w: endpoint %v has no producer", core.ErrDecomposition, to)
		}
		v, ok := held[from]
		if !ok {
			return 0, fmt.Errorf("%w: endpoint %v consumed before production", core.ErrDecomposition, from)
		}

		return v, nil
	}

	for _, inst := range cb.Instances() {
		child, ok := inst.Bloq.(core.Classical)
		if !ok {
			// Fall through one more decomposition level.
			child = classicalViaDecompose{inst.Bloq}
		}

		ins := map[string][]uint64{}
		for _, reg := range inst.Bloq.Signature().Lefts() {
			n, err := reg.NumElements()
			if err != nil {
				return nil, err
			}
			row := make([]uint64, n)
			for i := 0; i < n; i++ {
				v, err := take(core.Endpoint{Node: inst.ID, Reg: reg.Name(), Idx: i})
				if err != nil {
					return nil, err
				}
				row[i] = v
			}
			ins[reg.Name()] = row
		}

		outs, err := child.Apply(ins)
		if err != nil {
			return nil, err
		}
		for _, reg := range inst.Bloq.Signature().Rights() {
			row, ok := outs[reg.Name()]
			if !ok {
				return nil, fmt.Errorf("%w: %s produced no value for register %q",
					core.ErrDecomposition, inst.Bloq.Key(), reg.Name())
			}
			for i, v := range row {
				held[core.Endpoint{Node: inst.ID, Reg: reg.Name(), Idx: i}] = v
			}
		}
	}

	out := map[string][]uint64{}
	for _, reg := range sig.Rights() {
		n, err := reg.NumElements()
		if err != nil {
			return nil, err
		}
		row := make([]uint64, n)
		for i := 0; i < n; i++ {
			v, err := take(core.Endpoint{Node: core.RightEdge, Reg: reg.Name(), Idx: i})
			if err != nil {
				return nil, err
			}
			row[i] = v
		}
		out[reg.Name()] = row
	}

	return out, nil
}

// classicalViaDecompose adapts a bloq without its own classical action.
type classicalViaDecompose struct {
	core.Bloq
}

func (c classicalViaDecompose) Apply(vals map[string][]uint64) (map[string][]uint64, error) {
	return CallDecomposed(c.Bloq, vals)
}
