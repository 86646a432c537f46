package symb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbitops/swapnet/symb"
)

// TestValue_ZeroValue verifies the zero Value behaves as the constant 0.
func TestValue_ZeroValue(t *testing.T) {
	var v symb.Value
	assert.True(t, v.IsConcrete())
	n, err := v.Int()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, "0", v.String())
	assert.True(t, v.Equal(symb.Zero()))
}

// TestValue_ConcreteArithmetic checks folding of purely concrete operands.
func TestValue_ConcreteArithmetic(t *testing.T) {
	v := symb.I(3).Add(symb.I(4)).Mul(symb.I(2)) // (3+4)*2
	n, err := v.Int()
	require.NoError(t, err)
	assert.Equal(t, int64(14), n)

	v = v.Sub(symb.I(14))
	assert.True(t, v.Equal(symb.Zero()))
}

// TestValue_SymbolicArithmetic checks canonicalization of symbolic terms.
func TestValue_SymbolicArithmetic(t *testing.T) {
	n := symb.Sym("n")

	// 4*n via repeated addition and via scaling must coincide.
	byAdd := n.Add(n).Add(n).Add(n)
	byMul := n.MulInt(4)
	assert.True(t, byAdd.Equal(byMul))
	assert.Equal(t, "4*n", byMul.String())

	// n - n folds away entirely.
	assert.True(t, n.Sub(n).Equal(symb.Zero()))
	assert.False(t, n.IsConcrete())
	_, err := n.Int()
	assert.ErrorIs(t, err, symb.ErrNotConcrete)
}

// TestValue_ProductCanonicalForm verifies monomial ordering is canonical:
// L*n_b and n_b*L are the same term.
func TestValue_ProductCanonicalForm(t *testing.T) {
	l, nb := symb.Sym("L"), symb.Sym("n_b")
	assert.True(t, l.Mul(nb).Equal(nb.Mul(l)))
	assert.Equal(t, "L*n_b", l.Mul(nb).String())

	// Repeated symbols keep their degree exactly.
	n := symb.Sym("n")
	assert.Equal(t, "n*n", n.Mul(n).String())
	assert.True(t, n.Mul(n).Sub(n.Mul(n)).Equal(symb.Zero()))
}

// TestValue_MultiplexedCostShape renders the muxswap cost polynomial the
// way reports display it.
func TestValue_MultiplexedCostShape(t *testing.T) {
	l, nb, nc := symb.Sym("L"), symb.Sym("n_b"), symb.Sym("n_c")
	cost := l.Mul(nb).Add(l).Add(nc).Sub(symb.I(2))
	assert.Equal(t, "L*n_b + L + n_c - 2", cost.String())
}

// TestValue_DivExact covers exact and inexact division.
func TestValue_DivExact(t *testing.T) {
	n := symb.Sym("n")

	q, err := n.MulInt(4).DivExact(4)
	require.NoError(t, err)
	assert.True(t, q.Equal(n))

	_, err = n.MulInt(4).Add(symb.I(2)).DivExact(4)
	assert.ErrorIs(t, err, symb.ErrInexactDivision)

	_, err = n.DivExact(0)
	assert.ErrorIs(t, err, symb.ErrInexactDivision)
}

// TestValue_Signs exercises sign deduction under the symbols ≥ 1 assumption.
func TestValue_Signs(t *testing.T) {
	n := symb.Sym("n")

	assert.True(t, n.KnownPositive())
	assert.True(t, n.MulInt(4).KnownPositive())
	assert.True(t, symb.I(1).KnownPositive())
	assert.False(t, symb.I(0).KnownPositive())
	assert.True(t, symb.I(0).KnownNonNegative())

	// n - 2 may be negative at n=1: not provably positive nor non-negative.
	nm2 := n.Sub(symb.I(2))
	assert.False(t, nm2.KnownPositive())
	assert.False(t, nm2.KnownNonNegative())

	// n + 0 coefficients are non-negative with positive sum.
	assert.True(t, n.Add(symb.Zero()).KnownPositive())
}

// TestValue_AsInt verifies the checked narrowing helper.
func TestValue_AsInt(t *testing.T) {
	i, err := symb.I(12).AsInt()
	require.NoError(t, err)
	assert.Equal(t, 12, i)

	_, err = symb.Sym("n").AsInt()
	assert.ErrorIs(t, err, symb.ErrNotConcrete)
}

// TestSym_InvalidNamesPanic confirms the option-constructor panic policy.
func TestSym_InvalidNamesPanic(t *testing.T) {
	assert.Panics(t, func() { symb.Sym("") })
	assert.Panics(t, func() { symb.Sym("a*b") })
}
