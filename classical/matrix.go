package classical

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/qbitops/swapnet/core"
	"github.com/qbitops/swapnet/symb"
)

// maxMatrixQubits caps dense export at a 2^14-dimensional basis.
const maxMatrixQubits = 14

// Matrix exports the permutation a bloq applies to the computational
// basis as a dense 0/1 matrix, column i holding the image of basis state
// i. Basis states pack the signature registers in order, elements
// row-major, most significant first. The bloq must be concrete, small,
// and have matching left/right boundary widths.
func Matrix(b core.Bloq) (*mat.Dense, error) {
	sig := b.Signature()
	lefts, rights := sig.Lefts(), sig.Rights()

	nIn, err := boundaryBits(lefts)
	if err != nil {
		return nil, err
	}
	nOut, err := boundaryBits(rights)
	if err != nil {
		return nil, err
	}
	if nIn != nOut {
		return nil, fmt.Errorf("%w: boundary widths differ, %d in vs %d out", core.ErrDecomposition, nIn, nOut)
	}
	if nIn > maxMatrixQubits {
		return nil, fmt.Errorf("%w: %d qubits exceed the dense export limit of %d",
			core.ErrConstruction, nIn, maxMatrixQubits)
	}

	dim := 1 << uint(nIn)
	m := mat.NewDense(dim, dim, nil)
	for col := 0; col < dim; col++ {
		vals, err := unpack(lefts, uint64(col), nIn)
		if err != nil {
			return nil, err
		}
		outs, err := Call(b, vals)
		if err != nil {
			return nil, err
		}
		row, err := pack(rights, outs)
		if err != nil {
			return nil, err
		}
		m.Set(int(row), col, 1)
	}

	return m, nil
}

func boundaryBits(regs []core.Register) (int, error) {
	total := symb.Zero()
	for _, r := range regs {
		total = total.Add(r.TotalBits())
	}

	n, err := total.AsInt()
	if err != nil {
		return 0, fmt.Errorf("%w: boundary width %s", core.ErrSymbolic, total)
	}

	return n, nil
}

// unpack slices a packed basis index into per-register element values,
// most significant register first.
func unpack(regs []core.Register, state uint64, total int) (map[string][]uint64, error) {
	vals := map[string][]uint64{}
	shift := total
	for _, r := range regs {
		bits, err := r.Bits().AsInt()
		if err != nil {
			return nil, err
		}
		n, err := r.NumElements()
		if err != nil {
			return nil, err
		}
		row := make([]uint64, n)
		for i := 0; i < n; i++ {
			shift -= bits
			row[i] = (state >> uint(shift)) & ((1 << uint(bits)) - 1)
		}
		vals[r.Name()] = row
	}

	return vals, nil
}

// pack is the inverse of unpack over the right boundary.
func pack(regs []core.Register, vals map[string][]uint64) (uint64, error) {
	var state uint64
	for _, r := range regs {
		bits, err := r.Bits().AsInt()
		if err != nil {
			return 0, err
		}
		row, ok := vals[r.Name()]
		if !ok {
			return 0, fmt.Errorf("%w: no value for register %q", core.ErrDecomposition, r.Name())
		}
		for _, v := range row {
			if v >= 1<<uint(bits) {
				return 0, fmt.Errorf("%w: value %d overflows %d-bit register %q",
					core.ErrDecomposition, v, bits, r.Name())
			}
			state = state<<uint(bits) | v
		}
	}

	return state, nil
}
