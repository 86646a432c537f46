package swapzero

// swapOp is one scheduled controlled exchange: flattened target slots low
// and high trade contents under bit `bit` of axis `axis`'s selection index.
type swapOp struct {
	axis int
	bit  int // LSB-numbered selection bit controlling the exchange
	low  int // flattened index that receives the selected content
	high int // flattened index a stride of 2^bit above low along the axis
}

// schedule produces the full swap schedule for concrete per-axis selection
// widths selBits and register counts nTargets, in deterministic execution
// order. Axes run from last to first; within an axis, selection bits run
// from least significant upward, pairing slots a stride 2^bit apart and
// skipping pairs that fall off the end (counts need not be powers of two).
// The schedule length is always Π nTargets − 1.
func schedule(selBits, nTargets []int) []swapOp {
	k := len(nTargets)

	// Flattening strides, row-major.
	strides := make([]int, k)
	stride := 1
	for d := k - 1; d >= 0; d-- {
		strides[d] = stride
		stride *= nTargets[d]
	}

	var ops []swapOp
	for d := k - 1; d >= 0; d-- {
		// Enumerate every combination of coordinates on axes before d;
		// axes after d have already collapsed to coordinate 0.
		prefix := make([]int, d)
		for {
			base := 0
			for j := 0; j < d; j++ {
				base += prefix[j] * strides[j]
			}
			for j := 0; j < selBits[d]; j++ {
				for x := 0; x+(1<<j) < nTargets[d]; x += 1 << (j + 1) {
					ops = append(ops, swapOp{
						axis: d,
						bit:  j,
						low:  base + x*strides[d],
						high: base + (x+(1<<j))*strides[d],
					})
				}
			}
			// Advance the prefix odometer.
			carry := d - 1
			for ; carry >= 0; carry-- {
				prefix[carry]++
				if prefix[carry] < nTargets[carry] {
					break
				}
				prefix[carry] = 0
			}
			if carry < 0 {
				break
			}
		}
	}

	return ops
}
