// Package path provides unweighted shortest paths over a [graph.Graph] and
// the longest-path report between name nodes.
package path

import (
	"strings"

	"github.com/matzehuels/hpdgraph/pkg/graph"
)

// Separator joins labels in [Format].
const Separator = " -> "

// Tree is the result of a single-source breadth-first search. Every edge has
// weight one, so BFS order is uniform-cost order.
type Tree struct {
	source graph.NodeID
	dist   []int // -1 when unreachable
	parent []graph.NodeID
	order  []graph.NodeID // nodes in the order they were reached
}

// ShortestPaths searches outward from src. An unknown src yields a tree that
// reaches nothing.
func ShortestPaths(g *graph.Graph, src graph.NodeID) *Tree {
	t := newTree(g.NodeCount())
	t.search(g, src)
	return t
}

func newTree(n int) *Tree {
	t := &Tree{
		source: -1,
		dist:   make([]int, n),
		parent: make([]graph.NodeID, n),
	}
	for i := range t.dist {
		t.dist[i] = -1
		t.parent[i] = -1
	}
	return t
}

// search reruns the tree from src. Only the entries reached by the previous
// search are cleared, so repeated searches over disjoint components cost
// the size of each component rather than the size of the graph.
func (t *Tree) search(g *graph.Graph, src graph.NodeID) {
	for _, v := range t.order {
		t.dist[v] = -1
		t.parent[v] = -1
	}
	t.order = t.order[:0]
	t.source = src
	if !g.Has(src) {
		return
	}

	t.dist[src] = 0
	t.order = append(t.order, src)
	for head := 0; head < len(t.order); head++ {
		v := t.order[head]
		for _, m := range g.Neighbors(v) {
			if t.dist[m] >= 0 {
				continue
			}
			t.dist[m] = t.dist[v] + 1
			t.parent[m] = v
			t.order = append(t.order, m)
		}
	}
}

// Source returns the search origin.
func (t *Tree) Source() graph.NodeID { return t.source }

// Reached returns every reachable node, source first, in nondecreasing
// distance order.
func (t *Tree) Reached() []graph.NodeID { return t.order }

// Dist returns the number of edges on a shortest path from the source to n.
func (t *Tree) Dist(n graph.NodeID) (int, bool) {
	if n < 0 || int(n) >= len(t.dist) || t.dist[n] < 0 {
		return 0, false
	}
	return t.dist[n], true
}

// PathTo returns one shortest path from the source to n, both inclusive, or
// nil if n is unreachable.
func (t *Tree) PathTo(n graph.NodeID) []graph.NodeID {
	d, ok := t.Dist(n)
	if !ok {
		return nil
	}
	p := make([]graph.NodeID, d+1)
	for i := d; i >= 0; i-- {
		p[i] = n
		n = t.parent[n]
	}
	return p
}

// LongPath is one reported path between two name nodes.
type LongPath struct {
	Length int
	Nodes  []graph.NodeID
}

// Longest reports, for each search cluster, the farthest name node from the
// first unvisited name node that starts it.
//
// Nodes are considered in creation order. Every node already in visited is
// skipped. Each remaining name node starts a search; every node the search
// reaches is marked in visited and so never starts another one. A path is
// reported when its length is at least minLength and greater than zero.
// Ties keep the first name node reached.
//
// visited holds one entry per node of g; nil starts fresh and a shorter
// slice is extended with unvisited entries. It is returned so callers can
// continue marking across calls.
func Longest(g *graph.Graph, minLength int, visited []bool) ([]LongPath, []bool) {
	if len(visited) < g.NodeCount() {
		grown := make([]bool, g.NodeCount())
		copy(grown, visited)
		visited = grown
	}

	t := newTree(g.NodeCount())

	var out []LongPath
	for i := range g.NodeCount() {
		n := graph.NodeID(i)
		if visited[n] {
			continue
		}
		visited[n] = true
		if g.Kind(n) != graph.KindName {
			continue
		}

		t.search(g, n)
		best, far := 0, graph.NodeID(-1)
		for _, m := range t.Reached() {
			visited[m] = true
			if g.Kind(m) != graph.KindName {
				continue
			}
			if d := t.dist[m]; d > best {
				best, far = d, m
			}
		}
		if far >= 0 && best >= minLength {
			out = append(out, LongPath{Length: best, Nodes: t.PathTo(far)})
		}
	}
	return out, visited
}

// Format renders a path as its labels joined by [Separator].
func Format(g *graph.Graph, nodes []graph.NodeID) string {
	labels := make([]string, len(nodes))
	for i, n := range nodes {
		labels[i] = g.Label(n)
	}
	return strings.Join(labels, Separator)
}
