package portfolio

import (
	"slices"
	"sync"

	"github.com/matzehuels/hpdgraph/pkg/graph"
	"github.com/matzehuels/hpdgraph/pkg/graph/bridge"
)

// UnknownName stands in for the best name of a portfolio without name nodes.
const UnknownName = "???"

// Portfolio is one connected component of the graph. It is read-only and
// safe for concurrent use.
type Portfolio struct {
	g     *graph.Graph
	index int
	nodes []graph.NodeID // creation order
	best  graph.NodeID   // -1 without name nodes
	name  string

	bridgesOnce sync.Once
	bridges     []bridge.Pair
}

// Map is the set of portfolios of one graph.
type Map struct {
	g          *graph.Graph
	portfolios []*Portfolio
	owner      []int // node -> portfolio index
}

// Partition splits g into its connected components.
func Partition(g *graph.Graph) *Map {
	n := g.NodeCount()
	m := &Map{g: g, owner: make([]int, n)}
	for i := range m.owner {
		m.owner[i] = -1
	}

	for i := range n {
		start := graph.NodeID(i)
		if m.owner[start] >= 0 {
			continue
		}
		idx := len(m.portfolios)
		m.owner[start] = idx
		nodes := []graph.NodeID{start}
		stack := []graph.NodeID{start}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, w := range g.Neighbors(v) {
				if m.owner[w] < 0 {
					m.owner[w] = idx
					nodes = append(nodes, w)
					stack = append(stack, w)
				}
			}
		}
		slices.Sort(nodes)

		p := &Portfolio{g: g, index: idx, nodes: nodes}
		p.best = p.bestName()
		p.name = UnknownName + "'s portfolio"
		if p.best >= 0 {
			p.name = g.Label(p.best) + "'s portfolio"
		}
		m.portfolios = append(m.portfolios, p)
	}
	return m
}

// Graph returns the partitioned graph.
func (m *Map) Graph() *graph.Graph { return m.g }

// All returns every portfolio in discovery order.
func (m *Map) All() []*Portfolio { return m.portfolios }

// Len returns the number of portfolios, i.e. connected components.
func (m *Map) Len() int { return len(m.portfolios) }

// Get returns the portfolio with the given index.
func (m *Map) Get(index int) (*Portfolio, bool) {
	if index < 0 || index >= len(m.portfolios) {
		return nil, false
	}
	return m.portfolios[index], true
}

// ForNode returns the portfolio containing n.
func (m *Map) ForNode(n graph.NodeID) (*Portfolio, bool) {
	if n < 0 || int(n) >= len(m.owner) {
		return nil, false
	}
	return m.portfolios[m.owner[n]], true
}

// Index returns the portfolio's position in discovery order.
func (p *Portfolio) Index() int { return p.index }

// Nodes returns the member nodes in creation order.
func (p *Portfolio) Nodes() []graph.NodeID { return p.nodes }

// Len returns the number of member nodes.
func (p *Portfolio) Len() int { return len(p.nodes) }

// Graph returns the graph the portfolio belongs to.
func (p *Portfolio) Graph() *graph.Graph { return p.g }

// Name returns the display title, "{best name}'s portfolio".
func (p *Portfolio) Name() string { return p.name }

// BestName returns the name node with the most mentions. The first such node
// in portfolio order wins ties.
func (p *Portfolio) BestName() (graph.NodeID, bool) { return p.best, p.best >= 0 }

func (p *Portfolio) bestName() graph.NodeID {
	best, most := graph.NodeID(-1), -1
	for _, n := range p.nodes {
		if p.g.Kind(n) != graph.KindName {
			continue
		}
		if c := p.g.Mentions(n); c > most {
			best, most = n, c
		}
	}
	return best
}

// Edges returns every edge inside the portfolio exactly once, in the order
// they are first met walking member nodes and their incident edges.
func (p *Portfolio) Edges() []graph.EdgeID {
	seen := make(map[graph.EdgeID]bool)
	var out []graph.EdgeID
	for _, n := range p.nodes {
		for _, e := range p.g.Incident(n) {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

// registrations returns the distinct registration ids on edges incident to
// name nodes, in first-seen order.
func (p *Portfolio) registrations() []uint32 {
	seen := make(map[uint32]bool)
	var ids []uint32
	for _, n := range p.nodes {
		if p.g.Kind(n) != graph.KindName {
			continue
		}
		for _, e := range p.g.Incident(n) {
			for _, ref := range p.g.Edge(e).Refs {
				if !seen[ref.RegistrationID] {
					seen[ref.RegistrationID] = true
					ids = append(ids, ref.RegistrationID)
				}
			}
		}
	}
	return ids
}

// BuildingCount returns the number of distinct registrations referenced by
// the portfolio's name nodes, a proxy for distinct buildings.
func (p *Portfolio) BuildingCount() int { return len(p.registrations()) }

// BINLookup resolves a registration to the buildings filed under it.
// [*hpd.Index] implements it.
type BINLookup interface {
	BINs(registrationID uint32) []uint32
}

// BINCount returns the number of distinct BINs across the portfolio's
// registrations.
func (p *Portfolio) BINCount(l BINLookup) int {
	bins := make(map[uint32]bool)
	for _, id := range p.registrations() {
		for _, bin := range l.BINs(id) {
			bins[bin] = true
		}
	}
	return len(bins)
}

// Ranked is a node with its mention count.
type Ranked struct {
	Node     graph.NodeID
	Label    string
	Mentions int
}

// RankNames returns the name nodes by descending mentions.
func (p *Portfolio) RankNames() []Ranked { return p.rank(graph.KindName) }

// RankBizAddrs returns the business-address nodes by descending mentions.
func (p *Portfolio) RankBizAddrs() []Ranked { return p.rank(graph.KindBizAddr) }

func (p *Portfolio) rank(kind graph.Kind) []Ranked {
	var out []Ranked
	for _, n := range p.nodes {
		if p.g.Kind(n) == kind {
			out = append(out, Ranked{Node: n, Label: p.g.Label(n), Mentions: p.g.Mentions(n)})
		}
	}
	slices.SortStableFunc(out, func(a, b Ranked) int { return b.Mentions - a.Mentions })
	return out
}

// Finder returns a local bridge finder rooted at the portfolio's first node.
func (p *Portfolio) Finder() *bridge.Finder {
	return bridge.New(p.g, p.nodes[0])
}

// LocalBridges returns the portfolio's local bridges, omitting any whose
// endpoint has degree one. The set is computed on first use and shared by
// later callers; it must not be modified.
func (p *Portfolio) LocalBridges() []bridge.Pair {
	p.bridgesOnce.Do(func() {
		for _, b := range p.Finder().FindLocalBridges() {
			if p.g.Degree(b[0]) > 1 && p.g.Degree(b[1]) > 1 {
				p.bridges = append(p.bridges, b)
			}
		}
	})
	return p.bridges
}
