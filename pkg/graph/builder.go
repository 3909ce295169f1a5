package graph

// Builder interns names and addresses into a [Graph] and accumulates one
// edge per (name, address) pair.
type Builder struct {
	g *Graph
}

// NewBuilder returns a builder over an empty graph.
func NewBuilder() *Builder {
	return &Builder{g: New()}
}

// Add records one accepted registration contact. The name and address nodes
// are created on first sight and the reference is appended to the edge
// between them.
func (b *Builder) Add(name, address string, ref Ref) (EdgeID, error) {
	n, err := b.intern(KindName, name)
	if err != nil {
		return 0, err
	}
	a, err := b.intern(KindBizAddr, address)
	if err != nil {
		return 0, err
	}
	if e, ok := b.g.EdgeBetween(n, a); ok {
		b.g.AddRef(e, ref)
		return e, nil
	}
	return b.g.AddEdge(n, a, ref)
}

func (b *Builder) intern(kind Kind, label string) (NodeID, error) {
	if id, ok := b.g.Lookup(kind, label); ok {
		return id, nil
	}
	return b.g.AddNode(kind, label)
}

// FindName is [Graph.FindName] on the graph under construction.
func (b *Builder) FindName(query string) (NodeID, bool) { return b.g.FindName(query) }

// NameCount returns the number of distinct names seen so far.
func (b *Builder) NameCount() int { return b.g.CountKind(KindName) }

// AddrCount returns the number of distinct business addresses seen so far.
func (b *Builder) AddrCount() int { return b.g.CountKind(KindBizAddr) }

// Graph returns the graph. The builder must not be used to add records
// after the graph has been handed to readers.
func (b *Builder) Graph() *Graph { return b.g }
