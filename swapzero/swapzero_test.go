package swapzero_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbitops/swapnet/core"
	"github.com/qbitops/swapnet/swapzero"
	"github.com/qbitops/swapnet/symb"
)

func TestNew_Validation(t *testing.T) {
	// Mismatched axis tuples.
	_, err := swapzero.New(
		[]symb.Value{symb.I(3)},
		symb.I(8),
		[]symb.Value{symb.I(5), symb.I(2)},
	)
	assert.ErrorIs(t, err, core.ErrConstruction)

	// Empty axis tuples.
	_, err = swapzero.New(nil, symb.I(8), nil)
	assert.ErrorIs(t, err, core.ErrConstruction)

	// Non-positive target width.
	_, err = swapzero.New1D(symb.I(3), symb.I(0), symb.I(5))
	assert.ErrorIs(t, err, core.ErrConstruction)

	// More registers than the selection register can address.
	_, err = swapzero.New1D(symb.I(2), symb.I(8), symb.I(5))
	assert.ErrorIs(t, err, core.ErrConstruction)

	// n = 2^selBits exactly is fine.
	_, err = swapzero.New1D(symb.I(2), symb.I(8), symb.I(4))
	assert.NoError(t, err)
}

func TestSignature(t *testing.T) {
	s, err := swapzero.New1D(symb.I(3), symb.I(8), symb.I(5))
	require.NoError(t, err)

	sig := s.Signature()
	require.Equal(t, 2, sig.Len())

	sel, ok := sig.Get("selection")
	require.True(t, ok)
	assert.True(t, sel.Bits().Equal(symb.I(3)))
	assert.Equal(t, core.SideThru, sel.Side())

	tgt, ok := sig.Get("targets")
	require.True(t, ok)
	assert.True(t, tgt.Bits().Equal(symb.I(8)))
	n, err := tgt.NumElements()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestSignature_MultiAxis(t *testing.T) {
	s, err := swapzero.New(
		[]symb.Value{symb.I(1), symb.I(2)},
		symb.I(4),
		[]symb.Value{symb.I(2), symb.I(3)},
	)
	require.NoError(t, err)

	sig := s.Signature()
	require.Equal(t, 3, sig.Len())

	_, ok := sig.Get("selection0")
	assert.True(t, ok)
	_, ok = sig.Get("selection1")
	assert.True(t, ok)

	tgt, ok := sig.Get("targets")
	require.True(t, ok)
	n, err := tgt.NumElements()
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestCallees_Concrete(t *testing.T) {
	s, err := swapzero.New1D(symb.I(3), symb.I(8), symb.I(5))
	require.NoError(t, err)

	calls, err := s.Callees()
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "CSwapApprox{n=8}", calls[0].Bloq.Key())
	assert.True(t, calls[0].Count.Equal(symb.I(4)), "n registers need n-1 swaps")

	// 4 T per controlled-swapped qubit.
	assert.True(t, s.TCount().Equal(symb.I(4*8*4)))
}

func TestCallees_Symbolic(t *testing.T) {
	n := symb.Sym("n")
	b := symb.Sym("b")
	s, err := swapzero.New1D(symb.Sym("k"), b, n)
	require.NoError(t, err)

	calls, err := s.Callees()
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Count.Equal(n.Sub(symb.I(1))))
	assert.True(t, s.TCount().Equal(n.Sub(symb.I(1)).Mul(b).MulInt(4)))
}

// The total swap count of a multi-axis operator matches the flat operator
// over the same number of registers: both reduce Π n_d registers with
// Π n_d − 1 controlled swaps.
func TestSwapCount_AxisCompositionMatchesFlat(t *testing.T) {
	nested, err := swapzero.New(
		[]symb.Value{symb.I(2), symb.I(2)},
		symb.I(8),
		[]symb.Value{symb.I(3), symb.I(4)},
	)
	require.NoError(t, err)

	flat, err := swapzero.New1D(symb.I(4), symb.I(8), symb.I(12))
	require.NoError(t, err)

	nc, err := nested.Callees()
	require.NoError(t, err)
	fc, err := flat.Callees()
	require.NoError(t, err)

	assert.True(t, nc[0].Count.Equal(fc[0].Count))
	assert.True(t, nc[0].Count.Equal(symb.I(11)))
	assert.True(t, nested.TCount().Equal(flat.TCount()))
}

func TestDecompose(t *testing.T) {
	s, err := swapzero.New1D(symb.I(3), symb.I(8), symb.I(5))
	require.NoError(t, err)

	cb, err := s.Decompose()
	require.NoError(t, err)
	assert.True(t, cb.Signature().Equal(s.Signature()))
	assert.Equal(t, core.PhaseRelative, cb.Phase())

	tally := map[string]symb.Value{}
	for _, c := range cb.Counts() {
		tally[c.Bloq.Name()] = c.Count
	}
	assert.True(t, tally["CSwapApprox"].Equal(symb.I(4)))
	assert.True(t, tally["Split"].Equal(symb.I(1)))
	assert.True(t, tally["Join"].Equal(symb.I(1)))

	// Decomposition is deterministic.
	again, err := s.Decompose()
	require.NoError(t, err)
	assert.True(t, cb.Equal(again))
}

func TestDecompose_SymbolicTargetWidth(t *testing.T) {
	// Only axis parameters must be concrete; the data width may stay
	// symbolic since target registers are never split.
	s, err := swapzero.New1D(symb.I(2), symb.Sym("b"), symb.I(4))
	require.NoError(t, err)

	cb, err := s.Decompose()
	require.NoError(t, err)

	tally := map[string]symb.Value{}
	for _, c := range cb.Counts() {
		tally[c.Bloq.Name()] = c.Count
	}
	assert.True(t, tally["CSwapApprox"].Equal(symb.I(3)))
}

func TestDecompose_SymbolicAxis(t *testing.T) {
	s, err := swapzero.New1D(symb.Sym("k"), symb.I(8), symb.Sym("n"))
	require.NoError(t, err)

	_, err = s.Decompose()
	assert.ErrorIs(t, err, core.ErrSymbolic)
}

func TestApply_MovesSelectedToFront(t *testing.T) {
	s, err := swapzero.New1D(symb.I(3), symb.I(8), symb.I(5))
	require.NoError(t, err)

	targets := []uint64{10, 11, 12, 13, 14}
	for sel := uint64(0); sel < 5; sel++ {
		out, err := s.Apply(map[string][]uint64{
			"selection": {sel},
			"targets":   append([]uint64(nil), targets...),
		})
		require.NoError(t, err)
		assert.Equal(t, sel, out["selection"][0])
		assert.Equal(t, targets[sel], out["targets"][0], "selection=%d", sel)
		assert.ElementsMatch(t, targets, out["targets"], "schedule permutes, never clobbers")
	}
}

func TestApply_MultiAxis(t *testing.T) {
	s, err := swapzero.New(
		[]symb.Value{symb.I(1), symb.I(2)},
		symb.I(8),
		[]symb.Value{symb.I(2), symb.I(3)},
	)
	require.NoError(t, err)

	// Row-major grid: value 10r+c at coordinate (r, c).
	targets := []uint64{0, 1, 2, 10, 11, 12}
	for r := uint64(0); r < 2; r++ {
		for c := uint64(0); c < 3; c++ {
			out, err := s.Apply(map[string][]uint64{
				"selection0": {r},
				"selection1": {c},
				"targets":    append([]uint64(nil), targets...),
			})
			require.NoError(t, err)
			assert.Equal(t, 10*r+c, out["targets"][0], "selection=(%d,%d)", r, c)
		}
	}
}
