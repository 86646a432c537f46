package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbitops/swapnet/core"
	"github.com/qbitops/swapnet/symb"
)

// TestRegister_Defaults checks scalar THRU defaults.
func TestRegister_Defaults(t *testing.T) {
	r, err := core.NewRegister("x", symb.I(4))
	require.NoError(t, err)
	assert.Equal(t, "x", r.Name())
	assert.Equal(t, core.SideThru, r.Side())
	assert.True(t, r.IsScalar())

	n, err := r.NumElements()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, r.TotalBits().Equal(symb.I(4)))
}

// TestRegister_RejectsBadParameters covers the construction error class.
func TestRegister_RejectsBadParameters(t *testing.T) {
	_, err := core.NewRegister("", symb.I(1))
	assert.ErrorIs(t, err, core.ErrConstruction)

	_, err = core.NewRegister("x", symb.I(0))
	assert.ErrorIs(t, err, core.ErrConstruction)

	_, err = core.NewRegister("x", symb.I(-3))
	assert.ErrorIs(t, err, core.ErrConstruction)

	// n - 2 can be ≤ 0 at n = 1: not provably positive, rejected.
	_, err = core.NewRegister("x", symb.Sym("n").Sub(symb.I(2)))
	assert.ErrorIs(t, err, core.ErrConstruction)

	_, err = core.NewRegister("t", symb.I(2), core.WithShape(symb.I(0)))
	assert.ErrorIs(t, err, core.ErrConstruction)
}

// TestRegister_SymbolicWidth verifies symbolic widths validate and render.
func TestRegister_SymbolicWidth(t *testing.T) {
	r, err := core.NewRegister("x", symb.Sym("n"))
	require.NoError(t, err)
	assert.False(t, r.Bits().IsConcrete())
	assert.Equal(t, "x:n (thru)", r.String())
}

// TestRegister_ShapedElements covers multi-dimensional shapes.
func TestRegister_ShapedElements(t *testing.T) {
	r, err := core.NewRegister("targets", symb.I(2),
		core.WithShape(symb.I(3), symb.I(4)))
	require.NoError(t, err)

	n, err := r.NumElements()
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.True(t, r.TotalBits().Equal(symb.I(24)))

	// Symbolic shape dims defeat element enumeration.
	sym, err := core.NewRegister("targets", symb.I(2), core.WithShape(symb.Sym("M")))
	require.NoError(t, err)
	_, err = sym.NumElements()
	assert.ErrorIs(t, err, core.ErrSymbolic)
}

// TestSignature_UniqueNames verifies duplicate detection and lookups.
func TestSignature_UniqueNames(t *testing.T) {
	a := core.MustRegister("a", symb.I(1))
	b := core.MustRegister("b", symb.I(2), core.WithSide(core.SideRight))

	sig, err := core.NewSignature(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, sig.Len())

	got, ok := sig.Get("b")
	assert.True(t, ok)
	assert.Equal(t, core.SideRight, got.Side())

	_, err = core.NewSignature(a, a)
	assert.ErrorIs(t, err, core.ErrConstruction)
}

// TestSignature_Boundaries checks Lefts/Rights classification.
func TestSignature_Boundaries(t *testing.T) {
	thru := core.MustRegister("q", symb.I(1))
	in := core.MustRegister("junk", symb.I(1), core.WithSide(core.SideLeft))
	out := core.MustRegister("flag", symb.I(1), core.WithSide(core.SideRight))

	sig := core.MustSignature(thru, in, out)

	lefts := sig.Lefts()
	require.Len(t, lefts, 2)
	assert.Equal(t, "q", lefts[0].Name())
	assert.Equal(t, "junk", lefts[1].Name())

	rights := sig.Rights()
	require.Len(t, rights, 2)
	assert.Equal(t, "q", rights[0].Name())
	assert.Equal(t, "flag", rights[1].Name())
}
