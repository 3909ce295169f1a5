// Package bridge finds local bridges within one connected component of a
// [graph.Graph].
//
// A [Finder] runs a single depth-first traversal from a start node, records
// discovery times and tree parents, and derives for every node the lowest
// discovery time reachable from its subtree without reusing the tree edge to
// its parent. A tree edge (from, to) is a local bridge iff nothing below to
// reaches back to from or above it.
//
// The traversal is iterative, so component depth is bounded only by memory.
// A finder's state is sized to the traversed component, not to the graph,
// so one finder per portfolio costs linear time over all portfolios.
// A Finder is immutable after [New] and safe for concurrent queries.
package bridge

import (
	"github.com/matzehuels/hpdgraph/pkg/graph"
)

// Pair is a tree edge oriented from parent to child.
type Pair [2]graph.NodeID

// Finder answers local-bridge queries for the component containing start.
// Nodes are addressed by slot, their discovery time.
type Finder struct {
	start  graph.NodeID
	slot   map[graph.NodeID]int
	low    []int // by slot
	parent []int // parent slot, -1 for the root
	tree   []Pair
}

type frame struct {
	node graph.NodeID
	slot int
	nbrs []graph.NodeID
	next int
}

// New traverses the component of g containing start. If start is not a node
// of g the finder has visited nothing and every query is not applicable.
func New(g *graph.Graph, start graph.NodeID) *Finder {
	f := &Finder{start: start, slot: make(map[graph.NodeID]int)}
	if !g.Has(start) {
		return f
	}

	f.visit(start, -1)
	stack := []frame{{node: start, slot: 0, nbrs: g.Neighbors(start)}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.nbrs) {
			m := top.nbrs[top.next]
			top.next++
			if _, seen := f.slot[m]; !seen {
				s := f.visit(m, top.slot)
				f.tree = append(f.tree, Pair{top.node, m})
				stack = append(stack, frame{node: m, slot: s, nbrs: g.Neighbors(m)})
			}
			continue
		}

		// Every neighbor is visited once a node finishes, and every tree
		// child has finished before it.
		v := top.slot
		low := v
		for _, m := range top.nbrs {
			sm := f.slot[m]
			switch {
			case f.parent[sm] == v:
				low = min(low, f.low[sm])
			case sm != f.parent[v]:
				low = min(low, sm)
			}
		}
		f.low[v] = low
		stack = stack[:len(stack)-1]
	}
	return f
}

// visit assigns n the next slot under parent and returns it.
func (f *Finder) visit(n graph.NodeID, parent int) int {
	s := len(f.parent)
	f.slot[n] = s
	f.parent = append(f.parent, parent)
	f.low = append(f.low, s)
	return s
}

// Start returns the traversal root.
func (f *Finder) Start() graph.NodeID { return f.start }

// Len returns the number of nodes the traversal reached.
func (f *Finder) Len() int { return len(f.parent) }

// Visited reports whether n was reached by the traversal.
func (f *Finder) Visited(n graph.NodeID) bool {
	_, ok := f.slot[n]
	return ok
}

// IsLocalBridge reports whether the pair (a, b) is a local bridge. The
// second result is false when either node lies outside the traversed
// component, in which case the first result is meaningless. Pairs that are
// not tree edges, including non-adjacent pairs, are never local bridges.
// Argument order does not matter.
func (f *Finder) IsLocalBridge(a, b graph.NodeID) (isBridge, applicable bool) {
	sa, okA := f.slot[a]
	sb, okB := f.slot[b]
	if !okA || !okB {
		return false, false
	}
	switch {
	case f.parent[sb] == sa:
		return f.low[sb] > sa, true
	case f.parent[sa] == sb:
		return f.low[sa] > sb, true
	default:
		return false, true
	}
}

// FindLocalBridges returns every tree edge that is a local bridge, oriented
// parent to child, in discovery order.
func (f *Finder) FindLocalBridges() []Pair {
	var out []Pair
	for _, p := range f.tree {
		if f.low[f.slot[p[1]]] > f.slot[p[0]] {
			out = append(out, p)
		}
	}
	return out
}
