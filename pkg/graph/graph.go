package graph

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownNode is returned by [Graph.AddEdge] when an endpoint is not
	// a node of the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same node. The graph never contains loops.
	ErrSelfLoop = errors.New("self loop")

	// ErrEmptyLabel is returned by [Graph.AddNode] for an empty label.
	ErrEmptyLabel = errors.New("node label must not be empty")

	// ErrDuplicateNode is returned by [Graph.AddNode] when a node with the
	// same kind and label already exists. Use [Graph.Lookup] or [Builder]
	// to intern labels.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the unordered pair
	// is already connected. Use [Graph.AddRef] to extend the existing edge.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// NodeID identifies a node. Ids are dense, starting at zero, in creation order.
type NodeID int

// EdgeID identifies an edge. Ids are dense, starting at zero, in creation order.
type EdgeID int

// Kind distinguishes the two node variants.
type Kind uint8

const (
	// KindName is a normalized person or corporation name.
	KindName Kind = iota
	// KindBizAddr is a normalized business address.
	KindBizAddr
)

// String returns "name" or "bizaddr".
func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindBizAddr:
		return "bizaddr"
	default:
		return "unknown"
	}
}

// Ref is one registration-contact row that contributed to an edge.
type Ref struct {
	RegistrationID uint32
	ContactID      uint32
}

// Edge is an undirected connection. A is always the endpoint that was passed
// first to [Graph.AddEdge].
type Edge struct {
	A, B NodeID
	Refs []Ref
}

// Other returns the endpoint of e that is not n.
func (e Edge) Other(n NodeID) NodeID {
	if e.A == n {
		return e.B
	}
	return e.A
}

type node struct {
	kind  Kind
	label uint32 // index into the arena
}

type adjacency struct {
	to   NodeID
	edge EdgeID
}

type pair struct{ lo, hi NodeID }

func pairOf(a, b NodeID) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// Graph is an undirected graph of name and business-address nodes.
//
// The zero value is not usable; use [New] or [NewBuilder].
// Graph is not safe for concurrent writes.
type Graph struct {
	arena   []string
	interns map[string]uint32
	nodes   []node
	byLabel [2]map[string]NodeID // per kind
	edges   []Edge
	adj     [][]adjacency
	pairs   map[pair]EdgeID
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		interns: make(map[string]uint32),
		byLabel: [2]map[string]NodeID{make(map[string]NodeID), make(map[string]NodeID)},
		pairs:   make(map[pair]EdgeID),
	}
}

// AddNode inserts a node and returns its id. It returns ErrEmptyLabel for an
// empty label and ErrDuplicateNode if (kind, label) already exists.
func (g *Graph) AddNode(kind Kind, label string) (NodeID, error) {
	if label == "" {
		return 0, ErrEmptyLabel
	}
	if int(kind) >= len(g.byLabel) {
		return 0, errors.New("unknown node kind")
	}
	if _, ok := g.byLabel[kind][label]; ok {
		return 0, ErrDuplicateNode
	}

	idx, ok := g.interns[label]
	if !ok {
		idx = uint32(len(g.arena))
		g.arena = append(g.arena, label)
		g.interns[label] = idx
	}

	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, node{kind: kind, label: idx})
	g.adj = append(g.adj, nil)
	g.byLabel[kind][label] = id
	return id, nil
}

// AddEdge connects a and b with the given references and returns the new
// edge id. The pair is unordered: AddEdge(b, a) after AddEdge(a, b) returns
// ErrDuplicateEdge.
func (g *Graph) AddEdge(a, b NodeID, refs ...Ref) (EdgeID, error) {
	if !g.Has(a) || !g.Has(b) {
		return 0, ErrUnknownNode
	}
	if a == b {
		return 0, ErrSelfLoop
	}
	p := pairOf(a, b)
	if _, ok := g.pairs[p]; ok {
		return 0, ErrDuplicateEdge
	}

	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, Edge{A: a, B: b, Refs: append([]Ref(nil), refs...)})
	g.adj[a] = append(g.adj[a], adjacency{to: b, edge: id})
	g.adj[b] = append(g.adj[b], adjacency{to: a, edge: id})
	g.pairs[p] = id
	return id, nil
}

// AddRef appends a reference to an existing edge.
func (g *Graph) AddRef(e EdgeID, ref Ref) {
	g.edges[e].Refs = append(g.edges[e].Refs, ref)
}

// Has reports whether n is a node of the graph.
func (g *Graph) Has(n NodeID) bool { return n >= 0 && int(n) < len(g.nodes) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// CountKind returns the number of nodes of the given kind.
func (g *Graph) CountKind(kind Kind) int {
	if int(kind) >= len(g.byLabel) {
		return 0
	}
	return len(g.byLabel[kind])
}

// Kind returns the kind of n. n must be a node of the graph.
func (g *Graph) Kind(n NodeID) Kind { return g.nodes[n].kind }

// Label returns the display string of n. n must be a node of the graph.
func (g *Graph) Label(n NodeID) string { return g.arena[g.nodes[n].label] }

// Edge returns the edge with id e. The Refs slice must not be modified.
func (g *Graph) Edge(e EdgeID) Edge { return g.edges[e] }

// Neighbors returns the nodes adjacent to n in edge insertion order.
func (g *Graph) Neighbors(n NodeID) []NodeID {
	if !g.Has(n) {
		return nil
	}
	out := make([]NodeID, len(g.adj[n]))
	for i, a := range g.adj[n] {
		out[i] = a.to
	}
	return out
}

// Incident returns the edges touching n in insertion order.
func (g *Graph) Incident(n NodeID) []EdgeID {
	if !g.Has(n) {
		return nil
	}
	out := make([]EdgeID, len(g.adj[n]))
	for i, a := range g.adj[n] {
		out[i] = a.edge
	}
	return out
}

// Degree returns the number of neighbors of n, or 0 if n is unknown.
func (g *Graph) Degree(n NodeID) int {
	if !g.Has(n) {
		return 0
	}
	return len(g.adj[n])
}

// EdgeBetween returns the edge connecting a and b in either orientation.
func (g *Graph) EdgeBetween(a, b NodeID) (EdgeID, bool) {
	e, ok := g.pairs[pairOf(a, b)]
	return e, ok
}

// Mentions returns the total number of references on edges incident to n.
func (g *Graph) Mentions(n NodeID) int {
	if !g.Has(n) {
		return 0
	}
	total := 0
	for _, a := range g.adj[n] {
		total += len(g.edges[a.edge].Refs)
	}
	return total
}

// Lookup returns the node with the given kind and exact label.
func (g *Graph) Lookup(kind Kind, label string) (NodeID, bool) {
	if int(kind) >= len(g.byLabel) {
		return 0, false
	}
	id, ok := g.byLabel[kind][label]
	return id, ok
}

// FindName returns the name node whose label equals query, or failing that
// the first name node in creation order whose label contains query.
func (g *Graph) FindName(query string) (NodeID, bool) {
	if id, ok := g.Lookup(KindName, query); ok {
		return id, true
	}
	if query == "" {
		return 0, false
	}
	for i, n := range g.nodes {
		if n.kind == KindName && strings.Contains(g.arena[n.label], query) {
			return NodeID(i), true
		}
	}
	return 0, false
}
