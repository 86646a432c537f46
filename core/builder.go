package core

import (
	"fmt"
	"sort"

	"github.com/qbitops/swapnet/symb"
)

// Port is a one-shot handle to a live wire inside a Builder. A Port is
// issued when a register element is produced (by the left boundary or by an
// instance) and is invalidated the moment it is consumed; reusing it is a
// linearity violation and fails with ErrDecomposition.
type Port struct {
	seq  int
	bits symb.Value
}

// Bits returns the qubit width carried by the port.
func (p Port) Bits() symb.Value { return p.bits }

// portInfo tracks the producing endpoint of a live port.
type portInfo struct {
	src  Endpoint
	bits symb.Value
}

// Builder incrementally assembles a Composite while enforcing the linearity
// invariant: every produced port must be consumed exactly once before
// Finalize succeeds. Builders are single-use and not safe for concurrent
// use; decompositions are pure single-threaded computations.
type Builder struct {
	declared  *Signature // non-nil when built via FromSignature
	lefts     []Register // ad-hoc left registers, in AddRegister order
	instances []Instance
	wires     []Wire
	live      map[int]portInfo
	nextSeq   int
	phase     PhaseContract
}

// NewBuilder returns an empty ad-hoc Builder; its Signature is derived at
// Finalize from the registers added and the ports returned.
func NewBuilder() *Builder {
	return &Builder{live: make(map[int]portInfo), nextSeq: 1}
}

// FromSignature returns a Builder whose boundary is fixed to sig, together
// with the left-boundary ports per register (flattened row-major for shaped
// registers). This is the entry point for bloq decompositions: the
// finalized composite's signature is checked against sig exactly.
//
// Registers with symbolic shapes cannot be materialized and yield
// ErrSymbolic.
func FromSignature(sig Signature) (*Builder, map[string][]Port, error) {
	b := NewBuilder()
	b.declared = &sig

	ins := make(map[string][]Port)
	for _, reg := range sig.Lefts() {
		n, err := reg.NumElements()
		if err != nil {
			return nil, nil, err
		}
		ports := make([]Port, 0, n)
		for idx := 0; idx < n; idx++ {
			ports = append(ports, b.issue(Endpoint{Node: LeftEdge, Reg: reg.Name(), Idx: idx}, reg.Bits()))
		}
		ins[reg.Name()] = ports
	}

	return b, ins, nil
}

// AddRegister declares a scalar left-boundary register on an ad-hoc Builder
// and returns its port.
func (b *Builder) AddRegister(name string, bits symb.Value) (Port, error) {
	ports, err := b.AddRegisterShaped(name, bits)
	if err != nil {
		return Port{}, err
	}

	return ports[0], nil
}

// AddRegisterShaped declares a left-boundary register with the given
// concrete shape dims (none = scalar) and returns its flattened ports.
func (b *Builder) AddRegisterShaped(name string, bits symb.Value, dims ...int) ([]Port, error) {
	if b.declared != nil {
		return nil, fmt.Errorf("%w: cannot add registers to a signature-bound builder", ErrDecomposition)
	}
	opts := []RegisterOption{}
	if len(dims) > 0 {
		sdims := make([]symb.Value, 0, len(dims))
		for _, d := range dims {
			sdims = append(sdims, symb.I(int64(d)))
		}
		opts = append(opts, WithShape(sdims...))
	}
	reg, err := NewRegister(name, bits, opts...)
	if err != nil {
		return nil, err
	}
	for _, existing := range b.lefts {
		if existing.Name() == name {
			return nil, fmt.Errorf("%w: duplicate register name %q", ErrConstruction, name)
		}
	}
	b.lefts = append(b.lefts, reg)

	n, _ := reg.NumElements() // dims are concrete by construction
	ports := make([]Port, 0, n)
	for idx := 0; idx < n; idx++ {
		ports = append(ports, b.issue(Endpoint{Node: LeftEdge, Reg: name, Idx: idx}, bits))
	}

	return ports, nil
}

// issue registers a fresh live port produced at src.
func (b *Builder) issue(src Endpoint, bits symb.Value) Port {
	p := Port{seq: b.nextSeq, bits: bits}
	b.nextSeq++
	b.live[p.seq] = portInfo{src: src, bits: bits}

	return p
}

// consume retires a live port, wiring its producer to the given endpoint.
func (b *Builder) consume(p Port, to Endpoint, wantBits symb.Value) error {
	info, ok := b.live[p.seq]
	if !ok {
		return fmt.Errorf("%w: port for %s.%s[%d] already consumed or foreign to this builder", ErrDecomposition, nodeName(to.Node), to.Reg, to.Idx)
	}
	if !info.bits.Equal(wantBits) {
		return fmt.Errorf("%w: width mismatch at %s.%s[%d]: wire carries %s, register wants %s",
			ErrDecomposition, nodeName(to.Node), to.Reg, to.Idx, info.bits, wantBits)
	}
	delete(b.live, p.seq)
	b.wires = append(b.wires, Wire{From: info.src, To: to, Bits: info.bits})

	return nil
}

// nodeName renders an endpoint node id for error messages.
func nodeName(node int) string {
	switch node {
	case LeftEdge:
		return "left-edge"
	case RightEdge:
		return "right-edge"
	default:
		return fmt.Sprintf("node#%d", node)
	}
}

// Add appends one instance of bl, consuming the ports in ins for every
// left-boundary register of bl's signature (flattened row-major for shaped
// registers) and returning fresh ports for every right-boundary register.
//
// Failures — unknown or reused ports, width mismatches, wrong element
// counts, extra input names — wrap ErrDecomposition.
func (b *Builder) Add(bl Bloq, ins map[string][]Port) (map[string][]Port, error) {
	node := len(b.instances)
	sig := bl.Signature()

	// 1. Consume every left-side register's ports.
	seen := make(map[string]struct{}, len(ins))
	for _, reg := range sig.Lefts() {
		ports, ok := ins[reg.Name()]
		if !ok {
			return nil, fmt.Errorf("%w: %s: missing input register %q", ErrDecomposition, bl.Name(), reg.Name())
		}
		seen[reg.Name()] = struct{}{}
		n, err := reg.NumElements()
		if err != nil {
			return nil, err
		}
		if len(ports) != n {
			return nil, fmt.Errorf("%w: %s: register %q wants %d wires, got %d", ErrDecomposition, bl.Name(), reg.Name(), n, len(ports))
		}
		for idx, p := range ports {
			if err = b.consume(p, Endpoint{Node: node, Reg: reg.Name(), Idx: idx}, reg.Bits()); err != nil {
				return nil, err
			}
		}
	}
	// 2. Reject inputs that match no left-side register.
	for name := range ins {
		if _, ok := seen[name]; !ok {
			return nil, fmt.Errorf("%w: %s: unexpected input register %q", ErrDecomposition, bl.Name(), name)
		}
	}

	// 3. Record the instance and weaken the phase contract if needed.
	b.instances = append(b.instances, Instance{ID: node, Bloq: bl})
	if PhaseOf(bl) == PhaseRelative {
		b.phase = PhaseRelative
	}

	// 4. Issue ports for every right-side register.
	outs := make(map[string][]Port)
	for _, reg := range sig.Rights() {
		n, err := reg.NumElements()
		if err != nil {
			return nil, err
		}
		ports := make([]Port, 0, n)
		for idx := 0; idx < n; idx++ {
			ports = append(ports, b.issue(Endpoint{Node: node, Reg: reg.Name(), Idx: idx}, reg.Bits()))
		}
		outs[reg.Name()] = ports
	}

	return outs, nil
}

// Finalize consumes the remaining ports as the composite's right boundary
// and freezes the result.
//
// For a signature-bound builder the outs must match the declared right-side
// registers exactly. For an ad-hoc builder the right boundary is derived:
// registers added on the left become SideThru when they reappear in outs
// with matching width and element count, SideLeft otherwise; additional out
// names become SideRight registers in sorted-name order.
//
// Any port still live after the boundary is wired is a dropped wire and
// fails with ErrDecomposition; linearity demands every wire be used.
func (b *Builder) Finalize(outs map[string][]Port) (*Composite, error) {
	var sig Signature
	var err error
	if b.declared != nil {
		sig = *b.declared
		if err = b.checkDeclaredOuts(sig, outs); err != nil {
			return nil, err
		}
	} else if sig, err = b.deriveSignature(outs); err != nil {
		return nil, err
	}

	// Wire the right boundary in signature order (deterministic).
	consumedNames := make(map[string]struct{}, len(outs))
	for _, reg := range sig.Rights() {
		ports := outs[reg.Name()]
		consumedNames[reg.Name()] = struct{}{}
		for idx, p := range ports {
			if err = b.consume(p, Endpoint{Node: RightEdge, Reg: reg.Name(), Idx: idx}, reg.Bits()); err != nil {
				return nil, err
			}
		}
	}
	for name := range outs {
		if _, ok := consumedNames[name]; !ok {
			return nil, fmt.Errorf("%w: unexpected output register %q", ErrDecomposition, name)
		}
	}

	if len(b.live) != 0 {
		var orphans []string
		for _, info := range b.live {
			orphans = append(orphans, fmt.Sprintf("%s.%s[%d]", nodeName(info.src.Node), info.src.Reg, info.src.Idx))
		}
		sort.Strings(orphans)

		return nil, fmt.Errorf("%w: %d dangling wire(s): %v", ErrDecomposition, len(orphans), orphans)
	}

	cb := &Composite{sig: sig, instances: b.instances, wires: b.wires, phase: b.phase}
	b.live = nil // builder is spent

	return cb, nil
}

// checkDeclaredOuts validates outs against the declared right boundary.
func (b *Builder) checkDeclaredOuts(sig Signature, outs map[string][]Port) error {
	for _, reg := range sig.Rights() {
		ports, ok := outs[reg.Name()]
		if !ok {
			return fmt.Errorf("%w: missing output register %q", ErrDecomposition, reg.Name())
		}
		n, err := reg.NumElements()
		if err != nil {
			return err
		}
		if len(ports) != n {
			return fmt.Errorf("%w: output register %q wants %d wires, got %d", ErrDecomposition, reg.Name(), n, len(ports))
		}
	}

	return nil
}

// deriveSignature infers an ad-hoc builder's boundary from AddRegister
// declarations and the finalize outs.
func (b *Builder) deriveSignature(outs map[string][]Port) (Signature, error) {
	regs := make([]Register, 0, len(b.lefts)+len(outs))
	matched := make(map[string]struct{})

	for _, left := range b.lefts {
		n, _ := left.NumElements()
		ports, ok := outs[left.Name()]
		if ok && len(ports) == n && portsCarry(ports, left.Bits()) {
			matched[left.Name()] = struct{}{}
			regs = append(regs, left) // SideThru as declared
			continue
		}
		consumed := Register{name: left.name, bits: left.bits, side: SideLeft, shape: left.shape}
		regs = append(regs, consumed)
	}

	// Remaining outs become right-only registers, sorted for determinism.
	var rightNames []string
	for name := range outs {
		if _, ok := matched[name]; !ok {
			rightNames = append(rightNames, name)
		}
	}
	sort.Strings(rightNames)
	for _, name := range rightNames {
		ports := outs[name]
		if len(ports) == 0 {
			return Signature{}, fmt.Errorf("%w: output register %q has no wires", ErrDecomposition, name)
		}
		bits := ports[0].bits
		if !portsCarry(ports, bits) {
			return Signature{}, fmt.Errorf("%w: output register %q mixes wire widths", ErrDecomposition, name)
		}
		opts := []RegisterOption{WithSide(SideRight)}
		if len(ports) > 1 {
			opts = append(opts, WithShape(symb.I(int64(len(ports)))))
		}
		reg, err := NewRegister(name, bits, opts...)
		if err != nil {
			return Signature{}, err
		}
		regs = append(regs, reg)
	}

	return NewSignature(regs...)
}

// portsCarry reports whether every port carries exactly the given width.
func portsCarry(ports []Port, bits symb.Value) bool {
	for _, p := range ports {
		if !p.bits.Equal(bits) {
			return false
		}
	}

	return true
}
