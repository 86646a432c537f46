package callgraph

import (
	"github.com/qbitops/swapnet/core"
	"github.com/qbitops/swapnet/gates"
)

// Generalizer rewrites a bloq before it is recorded in the graph.
// Returning a nil bloq drops the node (and its subtree); an error wraps
// ErrGeneralization and aborts the expansion.
type Generalizer func(core.Bloq) (core.Bloq, error)

// IgnoreBookkeeping drops register split/join operations, which carry no
// gate cost and only restructure wires.
func IgnoreBookkeeping(b core.Bloq) (core.Bloq, error) {
	if gates.IsBookkeeping(b) {
		return nil, nil
	}

	return b, nil
}

// IgnoreCliffords drops the Clifford leaves, keeping only operations
// that contribute to the non-Clifford cost.
func IgnoreCliffords(b core.Bloq) (core.Bloq, error) {
	switch b.(type) {
	case gates.XGate, gates.CNOT, gates.Swap:
		return nil, nil
	}

	return b, nil
}

// Compose chains generalizers left to right, stopping at the first drop
// or error.
func Compose(gs ...Generalizer) Generalizer {
	return func(b core.Bloq) (core.Bloq, error) {
		var err error
		for _, g := range gs {
			b, err = g(b)
			if err != nil || b == nil {
				return nil, err
			}
		}

		return b, nil
	}
}
