package core

import (
	"sort"

	"github.com/qbitops/swapnet/symb"
)

// Boundary pseudo-nodes for wire endpoints. Real instances use ids ≥ 0.
const (
	// LeftEdge marks a wire originating at the composite's left boundary.
	LeftEdge = -1

	// RightEdge marks a wire terminating at the composite's right boundary.
	RightEdge = -2
)

// Endpoint locates one side of a wire: an instance id (or boundary
// pseudo-node), a register name on that instance, and a flattened shape
// index (0 for scalar registers).
type Endpoint struct {
	Node int
	Reg  string
	Idx  int
}

// Wire is one linear connection carrying Bits qubits from a producer
// endpoint to its unique consumer.
type Wire struct {
	From Endpoint
	To   Endpoint
	Bits symb.Value
}

// Equal reports structural wire equality.
func (w Wire) Equal(o Wire) bool {
	return w.From == o.From && w.To == o.To && w.Bits.Equal(o.Bits)
}

// Instance is one occurrence of a bloq inside a Composite.
type Instance struct {
	ID   int
	Bloq Bloq
}

// Composite is a frozen DAG of bloq instances connected by linear wires.
// Instances are stored in topological order (the Builder can only wire a
// consumer after its producers exist). A Composite also carries the weakest
// phase contract among its nodes, so approximate decompositions are never
// silently conflated with exact ones.
type Composite struct {
	sig       Signature
	instances []Instance
	wires     []Wire
	phase     PhaseContract
}

// Signature returns the composite's boundary interface.
func (c *Composite) Signature() Signature { return c.sig }

// Instances returns the bloq instances in topological order.
func (c *Composite) Instances() []Instance {
	return append([]Instance(nil), c.instances...)
}

// Wires returns a copy of all wires.
func (c *Composite) Wires() []Wire {
	return append([]Wire(nil), c.wires...)
}

// Phase returns PhaseRelative if any node carries a relative-phase
// contract, PhaseExact otherwise.
func (c *Composite) Phase() PhaseContract { return c.phase }

// Counts tallies the direct children with concrete multiplicities,
// deterministically ordered by content key.
func (c *Composite) Counts() []Call {
	tally := make(map[string]*Call)
	for _, inst := range c.instances {
		k := inst.Bloq.Key()
		if entry, ok := tally[k]; ok {
			entry.Count = entry.Count.Add(symb.One())
			continue
		}
		tally[k] = &Call{Bloq: inst.Bloq, Count: symb.One()}
	}

	keys := make([]string, 0, len(tally))
	for k := range tally {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	calls := make([]Call, 0, len(keys))
	for _, k := range keys {
		calls = append(calls, *tally[k])
	}

	return calls
}

// Equal reports structural equality: same signature, same instances (by
// content key, in order) and the same wires in construction order. Because
// decomposition rules are deterministic, re-decomposing a bloq yields an
// Equal composite.
func (c *Composite) Equal(o *Composite) bool {
	if c == nil || o == nil {
		return c == o
	}
	if !c.sig.Equal(o.sig) || len(c.instances) != len(o.instances) || len(c.wires) != len(o.wires) {
		return false
	}
	for i := range c.instances {
		if c.instances[i].ID != o.instances[i].ID || c.instances[i].Bloq.Key() != o.instances[i].Bloq.Key() {
			return false
		}
	}
	for i := range c.wires {
		if !c.wires[i].Equal(o.wires[i]) {
			return false
		}
	}

	return true
}
