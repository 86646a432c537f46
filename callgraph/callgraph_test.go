package callgraph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbitops/swapnet/callgraph"
	"github.com/qbitops/swapnet/core"
	"github.com/qbitops/swapnet/cswap"
	"github.com/qbitops/swapnet/muxswap"
	"github.com/qbitops/swapnet/swapzero"
	"github.com/qbitops/swapnet/symb"
)

func TestExpand_CSwapApprox(t *testing.T) {
	g, sigma, err := callgraph.Expand(cswap.Must(symb.I(8)))
	require.NoError(t, err)

	assert.True(t, sigma.TCount().Equal(symb.I(4*8)))
	toff, err := sigma.ToffoliCount()
	require.NoError(t, err)
	assert.True(t, toff.Equal(symb.I(8)))

	// RelPhaseToffoli and CNOT are the only cost leaves under the pair
	// gadget.
	for _, k := range sigma.Keys() {
		assert.Contains(t, []string{"RelPhaseToffoli", "CNOT"}, sigma[k].Bloq.Name())
	}
	assert.False(t, g.IsLeaf(g.Root()))
}

func TestExpand_Symbolic(t *testing.T) {
	n := symb.Sym("n")
	_, sigma, err := callgraph.Expand(cswap.Must(n))
	require.NoError(t, err)

	assert.True(t, sigma.TCount().Equal(n.MulInt(4)))
}

func TestExpand_SwapWithZero(t *testing.T) {
	s, err := swapzero.New1D(symb.I(3), symb.I(8), symb.I(5))
	require.NoError(t, err)

	g, sigma, err := callgraph.Expand(s)
	require.NoError(t, err)

	// 4 swaps of 8 qubits, 4 T each.
	assert.True(t, sigma.TCount().Equal(symb.I(4*8*4)))

	// The shared CSwapApprox child appears as one node with multiplicity,
	// not four copies.
	edges := g.Children(g.Root())
	require.Len(t, edges, 1)
	assert.Equal(t, "CSwapApprox{n=8}", edges[0].Child.Key())
	assert.True(t, edges[0].Count.Equal(symb.I(4)))
}

func TestExpand_MultiplexedCSwap_ClosedForm(t *testing.T) {
	m, err := muxswap.New(symb.I(3), symb.I(4), symb.I(8), 1)
	require.NoError(t, err)

	_, sigma, err := callgraph.Expand(m)
	require.NoError(t, err)

	toff, err := sigma.ToffoliCount()
	require.NoError(t, err)
	assert.True(t, toff.Equal(symb.I(4*8+4-2+1)), "L*n_b + L - 2 + n_c")
}

func TestExpand_MultiplexedCSwap_SymbolicClosedForm(t *testing.T) {
	l := symb.Sym("L")
	nb := symb.Sym("n_b")
	m, err := muxswap.New(symb.Sym("b"), l, nb, 2)
	require.NoError(t, err)

	_, sigma, err := callgraph.Expand(m)
	require.NoError(t, err)

	toff, err := sigma.ToffoliCount()
	require.NoError(t, err)
	want := l.Mul(nb).Add(l).Sub(symb.I(2)).Add(symb.I(2))
	assert.True(t, toff.Equal(want))
}

func TestExpand_MaxDepth(t *testing.T) {
	g, sigma, err := callgraph.Expand(cswap.Must(symb.I(8)), callgraph.WithMaxDepth(1))
	require.NoError(t, err)

	// The pair gadget is not expanded further; its own declared T cost
	// still makes the total exact.
	require.Len(t, sigma, 1)
	leaf := sigma[sigma.Keys()[0]]
	assert.Equal(t, "SwapPairApprox", leaf.Bloq.Name())
	assert.True(t, leaf.Count.Equal(symb.I(8)))
	assert.True(t, sigma.TCount().Equal(symb.I(32)))
	assert.True(t, g.IsLeaf(leaf.Bloq))
}

func TestExpand_Memoization(t *testing.T) {
	// Both operators decompose to CSwapApprox{n=8}; after a shared
	// expansion the graph holds each unique key once.
	s, err := swapzero.New1D(symb.I(3), symb.I(8), symb.I(5))
	require.NoError(t, err)

	g, _, err := callgraph.Expand(s)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, n := range g.Nodes() {
		seen[n.Key()]++
	}
	for k, c := range seen {
		assert.Equal(t, 1, c, "node %s duplicated", k)
	}
}

// structural drops the count declaration so expansion must go through the
// decomposition, bookkeeping included.
type structural struct {
	inner *cswap.CSwapApprox
}

func (s structural) Name() string              { return s.inner.Name() }
func (s structural) Signature() core.Signature { return s.inner.Signature() }
func (s structural) Key() string               { return "structural:" + s.inner.Key() }

func (s structural) Decompose() (*core.Composite, error) { return s.inner.Decompose() }

func TestExpand_DecomposePath_IgnoreBookkeeping(t *testing.T) {
	b := structural{inner: cswap.Must(symb.I(4))}

	// Without a generalizer the splits and joins show up.
	g, _, err := callgraph.Expand(b, callgraph.WithMaxDepth(1))
	require.NoError(t, err)
	names := map[string]bool{}
	for _, e := range g.Children(g.Root()) {
		names[e.Child.Name()] = true
	}
	assert.True(t, names["Split"])
	assert.True(t, names["Join"])

	// With IgnoreBookkeeping only the pair gadgets remain.
	_, sigma, err := callgraph.Expand(b,
		callgraph.WithMaxDepth(1),
		callgraph.WithGeneralizer(callgraph.IgnoreBookkeeping),
	)
	require.NoError(t, err)
	require.Len(t, sigma, 1)
	leaf := sigma[sigma.Keys()[0]]
	assert.Equal(t, "SwapPairApprox", leaf.Bloq.Name())
	assert.True(t, leaf.Count.Equal(symb.I(4)))
}

func TestExpand_GeneralizerError(t *testing.T) {
	reject := func(b core.Bloq) (core.Bloq, error) {
		if b.Name() == "RelPhaseToffoli" {
			return nil, errors.New("unknown gate class")
		}

		return b, nil
	}

	_, _, err := callgraph.Expand(cswap.Must(symb.I(2)), callgraph.WithGeneralizer(reject))
	assert.ErrorIs(t, err, callgraph.ErrGeneralization)
}

func TestExpand_GeneralizerDropsRoot(t *testing.T) {
	drop := func(core.Bloq) (core.Bloq, error) { return nil, nil }

	_, _, err := callgraph.Expand(cswap.Must(symb.I(2)), callgraph.WithGeneralizer(drop))
	assert.ErrorIs(t, err, callgraph.ErrGeneralization)
}

func TestCompose(t *testing.T) {
	g := callgraph.Compose(callgraph.IgnoreBookkeeping, callgraph.IgnoreCliffords)

	b := structural{inner: cswap.Must(symb.I(4))}
	_, sigma, err := callgraph.Expand(b, callgraph.WithGeneralizer(g))
	require.NoError(t, err)

	// Only the non-Clifford leaf survives.
	require.Len(t, sigma, 1)
	assert.Equal(t, "RelPhaseToffoli", sigma[sigma.Keys()[0]].Bloq.Name())
	assert.True(t, sigma.TCount().Equal(symb.I(16)))
}
