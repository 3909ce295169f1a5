package portfolio

import (
	"github.com/matzehuels/hpdgraph/pkg/graph"
)

// Document is the structured form of one portfolio, as served to the website.
type Document struct {
	Title string    `json:"title"`
	Nodes []DocNode `json:"nodes"`
	Edges []DocEdge `json:"edges"`
}

// DocNode is one node of a [Document].
type DocNode struct {
	ID    int    `json:"id"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// DocEdge is one undirected edge of a [Document].
type DocEdge struct {
	From        int    `json:"from"`
	To          int    `json:"to"`
	RegContacts int    `json:"reg_contacts"`
	IsBridge    bool   `json:"is_bridge"`
	BBL         string `json:"bbl"`
}

// BBLLookup resolves a registration to a representative building id.
// [*hpd.Index] implements it.
type BBLLookup interface {
	RepresentativeBBL(registrationID uint32) (string, bool)
}

// Document builds the portfolio's structured form. Edge bridge flags use
// [Portfolio.LocalBridges]. The bbl of an edge is the representative BBL of
// its first reference; it is empty when l is nil or has no entry.
func (p *Portfolio) Document(l BBLLookup) Document {
	bridges := make(map[graph.EdgeID]bool)
	for _, b := range p.LocalBridges() {
		if e, ok := p.g.EdgeBetween(b[0], b[1]); ok {
			bridges[e] = true
		}
	}

	doc := Document{
		Title: p.name,
		Nodes: make([]DocNode, 0, len(p.nodes)),
		Edges: []DocEdge{},
	}
	for _, n := range p.nodes {
		doc.Nodes = append(doc.Nodes, DocNode{
			ID:    int(n),
			Kind:  p.g.Kind(n).String(),
			Label: p.g.Label(n),
		})
	}
	for _, id := range p.Edges() {
		e := p.g.Edge(id)
		de := DocEdge{
			From:        int(e.A),
			To:          int(e.B),
			RegContacts: len(e.Refs),
			IsBridge:    bridges[id],
		}
		if l != nil && len(e.Refs) > 0 {
			de.BBL, _ = l.RepresentativeBBL(e.Refs[0].RegistrationID)
		}
		doc.Edges = append(doc.Edges, de)
	}
	return doc
}
