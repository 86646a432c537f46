package callgraph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/qbitops/swapnet/core"
	"github.com/qbitops/swapnet/symb"
)

// ErrGeneralization marks a generalizer that rejected or could not
// interpret an encountered bloq. It propagates to the Expand caller.
var ErrGeneralization = errors.New("callgraph: unsupported generalization")

// DefaultMaxDepth bounds expansion when no explicit depth is configured.
const DefaultMaxDepth = 1000

// Edge is one parent→child relation with its multiplicity.
type Edge struct {
	Child core.Bloq
	Count symb.Value
}

// Graph is the expanded call graph: unique bloq nodes keyed by structural
// identity, each with its direct children and multiplicities.
type Graph struct {
	root  core.Bloq
	nodes map[string]core.Bloq
	edges map[string][]Edge
	order []string
}

// Root returns the (generalized) bloq the graph was expanded from.
func (g *Graph) Root() core.Bloq { return g.root }

// Nodes returns every unique bloq in breadth-first discovery order.
func (g *Graph) Nodes() []core.Bloq {
	out := make([]core.Bloq, len(g.order))
	for i, k := range g.order {
		out[i] = g.nodes[k]
	}

	return out
}

// Children returns the direct children of b with multiplicities; a leaf
// returns nil.
func (g *Graph) Children(b core.Bloq) []Edge {
	return append([]Edge(nil), g.edges[b.Key()]...)
}

// IsLeaf reports whether b was not expanded further.
func (g *Graph) IsLeaf(b core.Bloq) bool {
	_, expanded := g.edges[b.Key()]

	return !expanded
}

// Leaf is one entry of the aggregated cost ledger.
type Leaf struct {
	Bloq  core.Bloq
	Count symb.Value
}

// Sigma maps leaf bloq keys to their total occurrence counts across the
// whole graph.
type Sigma map[string]Leaf

// Keys returns the ledger keys in sorted order.
func (s Sigma) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// TCount folds the ledger into a total T-gate count. Leaves that do not
// declare a T cost are Clifford and contribute nothing.
func (s Sigma) TCount() symb.Value {
	total := symb.Zero()
	for _, k := range s.Keys() {
		leaf := s[k]
		if tc, ok := leaf.Bloq.(interface{ TCount() symb.Value }); ok {
			total = total.Add(leaf.Count.Mul(tc.TCount()))
		}
	}

	return total
}

// ToffoliCount is TCount at four T per Toffoli-equivalent. It fails when
// the T total is not an exact multiple of four.
func (s Sigma) ToffoliCount() (symb.Value, error) {
	return s.TCount().DivExact(4)
}

type config struct {
	maxDepth    int
	generalizer Generalizer
}

// Option configures Expand.
type Option func(*config)

// WithMaxDepth bounds the recursion depth; nodes at the limit become
// cost leaves.
func WithMaxDepth(d int) Option {
	return func(c *config) { c.maxDepth = d }
}

// WithGeneralizer installs a bloq rewriter applied before each node is
// recorded. See Generalizer.
func WithGeneralizer(g Generalizer) Option {
	return func(c *config) { c.generalizer = g }
}

// Expand builds the call graph under b and the aggregated leaf ledger.
func Expand(b core.Bloq, opts ...Option) (*Graph, Sigma, error) {
	cfg := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	root, err := generalize(cfg.generalizer, b)
	if err != nil {
		return nil, nil, err
	}
	if root == nil {
		return nil, nil, fmt.Errorf("%w: generalizer dropped the root bloq %s", ErrGeneralization, b.Key())
	}
	root = core.Intern(root)

	g := &Graph{
		root:  root,
		nodes: map[string]core.Bloq{root.Key(): root},
		edges: map[string][]Edge{},
		order: []string{root.Key()},
	}

	// 1. Breadth-first expansion; the first visit of a key is at its
	//    minimal depth, so the depth cutoff is applied consistently.
	type item struct {
		bloq  core.Bloq
		depth int
	}
	queue := []item{{bloq: root}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		key := cur.bloq.Key()
		if _, done := g.edges[key]; done || cur.depth >= cfg.maxDepth {
			continue
		}

		children, err := callees(cur.bloq)
		if err != nil {
			return nil, nil, err
		}
		if children == nil {
			continue // leaf
		}

		edges := make([]Edge, 0, len(children))
		for _, call := range children {
			child, err := generalize(cfg.generalizer, call.Bloq)
			if err != nil {
				return nil, nil, err
			}
			if child == nil {
				continue
			}
			child = core.Intern(child)
			edges = append(edges, Edge{Child: child, Count: call.Count})
			ck := child.Key()
			if _, seen := g.nodes[ck]; !seen {
				g.nodes[ck] = child
				g.order = append(g.order, ck)
			}
			queue = append(queue, item{bloq: child, depth: cur.depth + 1})
		}
		g.edges[key] = edges
	}

	return g, g.sigma(), nil
}

// callees derives a bloq's direct children: its own count declaration
// when present, otherwise a tally of its decomposition. A nil result with
// nil error marks a leaf.
func callees(b core.Bloq) ([]core.Call, error) {
	if c, ok := b.(core.Countable); ok {
		calls, err := c.Callees()
		if err != nil {
			return nil, err
		}
		if len(calls) == 0 {
			return []core.Call{}, nil // expanded, childless
		}

		return calls, nil
	}

	cb, err := b.Decompose()
	switch {
	case errors.Is(err, core.ErrAtomic), errors.Is(err, core.ErrSymbolic):
		return nil, nil
	case err != nil:
		return nil, err
	}

	return cb.Counts(), nil
}

// generalize applies g to b; a nil generalizer is the identity. A nil
// bloq result drops the node.
func generalize(g Generalizer, b core.Bloq) (core.Bloq, error) {
	if g == nil {
		return b, nil
	}
	out, err := g(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrGeneralization, b.Key(), err)
	}

	return out, nil
}

// sigma propagates multiplicities from the root through the DAG and
// collects them at the leaves. Discovery order is a valid processing
// order for breadth-first expansion of an acyclic graph only when every
// parent precedes its children, which memoized re-visits can break, so
// nodes are processed in dependency order instead.
func (g *Graph) sigma() Sigma {
	mult := map[string]symb.Value{g.root.Key(): symb.One()}
	for _, key := range g.topoOrder() {
		m, ok := mult[key]
		if !ok {
			continue
		}
		for _, e := range g.edges[key] {
			ck := e.Child.Key()
			add := m.Mul(e.Count)
			if prev, seen := mult[ck]; seen {
				mult[ck] = prev.Add(add)
			} else {
				mult[ck] = add
			}
		}
	}

	sig := Sigma{}
	for key, b := range g.nodes {
		if _, expanded := g.edges[key]; expanded {
			continue
		}
		if m, ok := mult[key]; ok {
			sig[key] = Leaf{Bloq: b, Count: m}
		}
	}

	return sig
}

// topoOrder returns node keys with every parent before its children
// (Kahn's algorithm over the multiplicity edges).
func (g *Graph) topoOrder() []string {
	indeg := map[string]int{}
	for _, key := range g.order {
		if _, ok := indeg[key]; !ok {
			indeg[key] = 0
		}
		for _, e := range g.edges[key] {
			indeg[e.Child.Key()]++
		}
	}

	ready := make([]string, 0, len(indeg))
	for _, key := range g.order {
		if indeg[key] == 0 {
			ready = append(ready, key)
		}
	}

	out := make([]string, 0, len(indeg))
	for len(ready) > 0 {
		key := ready[0]
		ready = ready[1:]
		out = append(out, key)
		for _, e := range g.edges[key] {
			ck := e.Child.Key()
			indeg[ck]--
			if indeg[ck] == 0 {
				ready = append(ready, ck)
			}
		}
	}

	return out
}
