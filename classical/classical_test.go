package classical_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/qbitops/swapnet/classical"
	"github.com/qbitops/swapnet/core"
	"github.com/qbitops/swapnet/cswap"
	"github.com/qbitops/swapnet/gates"
	"github.com/qbitops/swapnet/muxswap"
	"github.com/qbitops/swapnet/swapzero"
	"github.com/qbitops/swapnet/symb"
)

// Simulating the decomposed swap network moves the addressed register
// into slot 0 for every in-range selection value.
func TestSwapWithZero_DecomposedRoundTrip(t *testing.T) {
	s, err := swapzero.New1D(symb.I(3), symb.I(2), symb.I(5))
	require.NoError(t, err)

	targets := []uint64{3, 1, 2, 0, 1}
	for _, x := range []uint64{0, 2, 4} {
		out, err := classical.CallDecomposed(s, map[string][]uint64{
			"selection": {x},
			"targets":   append([]uint64(nil), targets...),
		})
		require.NoError(t, err)
		assert.Equal(t, targets[x], out["targets"][0], "selection=%d", x)
		assert.Equal(t, x, out["selection"][0])

		// The wire-propagated evaluation and the declared classical
		// action agree, left-behind permutation included.
		direct, err := s.Apply(map[string][]uint64{
			"selection": {x},
			"targets":   append([]uint64(nil), targets...),
		})
		require.NoError(t, err)
		assert.Equal(t, direct, out)
	}
}

// The multi-axis decomposition wires per-axis splits, the prefix-based
// pair addressing and rejoins; simulating it must agree with the declared
// classical action at every grid coordinate.
func TestSwapWithZero_MultiAxisDecomposedRoundTrip(t *testing.T) {
	s, err := swapzero.New(
		[]symb.Value{symb.I(1), symb.I(2)},
		symb.I(4),
		[]symb.Value{symb.I(2), symb.I(3)},
	)
	require.NoError(t, err)

	// Row-major grid: value 10r+c at coordinate (r, c).
	targets := []uint64{0, 1, 2, 10, 11, 12}
	for r := uint64(0); r < 2; r++ {
		for c := uint64(0); c < 3; c++ {
			vals := map[string][]uint64{
				"selection0": {r},
				"selection1": {c},
				"targets":    append([]uint64(nil), targets...),
			}
			out, err := classical.CallDecomposed(s, vals)
			require.NoError(t, err)
			assert.Equal(t, 10*r+c, out["targets"][0], "selection=(%d,%d)", r, c)

			direct, err := s.Apply(vals)
			require.NoError(t, err)
			assert.Equal(t, direct, out, "selection=(%d,%d)", r, c)
		}
	}
}

func TestCSwapApprox_DecomposedMatchesDirect(t *testing.T) {
	c := cswap.Must(symb.I(3))
	for _, ctrl := range []uint64{0, 1} {
		vals := map[string][]uint64{"ctrl": {ctrl}, "x": {0b101}, "y": {0b010}}

		direct, err := classical.Call(c, vals)
		require.NoError(t, err)
		decomposed, err := classical.CallDecomposed(c, vals)
		require.NoError(t, err)
		assert.Equal(t, direct, decomposed, "ctrl=%d", ctrl)
	}
}

func TestMultiplexedCSwap_DecomposedMatchesDirect(t *testing.T) {
	m, err := muxswap.New(symb.I(2), symb.I(3), symb.I(4), 1)
	require.NoError(t, err)

	for sel := uint64(0); sel < 4; sel++ {
		for _, ctrl := range []uint64{0, 1} {
			vals := map[string][]uint64{
				"controls":  {ctrl},
				"selection": {sel},
				"targets":   {5, 6, 7},
				"output":    {9},
			}
			direct, err := classical.Call(m, vals)
			require.NoError(t, err)
			decomposed, err := classical.CallDecomposed(m, vals)
			require.NoError(t, err)
			assert.Equal(t, direct, decomposed, "sel=%d ctrl=%d", sel, ctrl)
		}
	}
}

func TestCall_RejectsMalformedInputs(t *testing.T) {
	c := cswap.Must(symb.I(3))

	// Missing register.
	_, err := classical.Call(c, map[string][]uint64{"ctrl": {1}, "x": {0b101}})
	assert.ErrorIs(t, err, core.ErrDecomposition)

	// Wrong element count on a shaped register.
	s, err := swapzero.New1D(symb.I(3), symb.I(2), symb.I(5))
	require.NoError(t, err)
	_, err = classical.Call(s, map[string][]uint64{
		"selection": {0},
		"targets":   {1, 2, 3},
	})
	assert.ErrorIs(t, err, core.ErrDecomposition)
}

func TestMatrix_CNOT(t *testing.T) {
	m, err := classical.Matrix(gates.CNOT{})
	require.NoError(t, err)

	r, c := m.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 4, c)

	// Basis packs ctrl then target: |c t>.
	assert.Equal(t, 1.0, m.At(0b00, 0b00))
	assert.Equal(t, 1.0, m.At(0b01, 0b01))
	assert.Equal(t, 1.0, m.At(0b11, 0b10))
	assert.Equal(t, 1.0, m.At(0b10, 0b11))
}

func TestMatrix_IsPermutation(t *testing.T) {
	m, err := classical.Matrix(cswap.Must(symb.I(1)))
	require.NoError(t, err)

	dim, _ := m.Dims()
	require.Equal(t, 8, dim)

	var prod mat.Dense
	prod.Mul(m.T(), m)

	eye := mat.NewDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		eye.Set(i, i, 1)
	}
	assert.True(t, mat.Equal(&prod, eye), "permutation matrices are orthogonal")
}

func TestMatrix_RejectsSymbolic(t *testing.T) {
	_, err := classical.Matrix(cswap.Must(symb.Sym("n")))
	assert.Error(t, err)
}

func TestMatrix_RejectsLarge(t *testing.T) {
	_, err := classical.Matrix(cswap.Must(symb.I(32)))
	assert.Error(t, err)
}
