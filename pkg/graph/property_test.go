package graph

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type row struct {
	name, addr string
	ref        Ref
}

// rowsFrom turns index pairs into records over small label alphabets so that
// repeated names and addresses are common.
func rowsFrom(names, addrs []uint8) []row {
	n := min(len(names), len(addrs))
	rows := make([]row, n)
	for i := range n {
		rows[i] = row{
			name: fmt.Sprintf("NAME %d", names[i]%8),
			addr: fmt.Sprintf("%d MAIN ST", addrs[i]%8),
			ref:  Ref{RegistrationID: uint32(i), ContactID: uint32(i)},
		}
	}
	return rows
}

func build(rows []row) *Graph {
	b := NewBuilder()
	for _, r := range rows {
		if _, err := b.Add(r.name, r.addr, r.ref); err != nil {
			panic(err)
		}
	}
	return b.Graph()
}

func TestBuilderProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	indexes := gen.SliceOf(gen.UInt8())

	properties.Property("references are conserved", prop.ForAll(
		func(names, addrs []uint8) bool {
			rows := rowsFrom(names, addrs)
			g := build(rows)
			total := 0
			for e := range g.EdgeCount() {
				refs := g.Edge(EdgeID(e)).Refs
				if len(refs) == 0 {
					return false
				}
				total += len(refs)
			}
			return total == len(rows)
		},
		indexes, indexes,
	))

	properties.Property("at most one edge per pair", prop.ForAll(
		func(names, addrs []uint8) bool {
			g := build(rowsFrom(names, addrs))
			seen := make(map[pair]bool)
			for e := range g.EdgeCount() {
				edge := g.Edge(EdgeID(e))
				p := pairOf(edge.A, edge.B)
				if seen[p] {
					return false
				}
				seen[p] = true
			}
			return true
		},
		indexes, indexes,
	))

	properties.Property("construction is deterministic", prop.ForAll(
		func(names, addrs []uint8) bool {
			rows := rowsFrom(names, addrs)
			g1, g2 := build(rows), build(rows)
			if g1.NodeCount() != g2.NodeCount() || g1.EdgeCount() != g2.EdgeCount() {
				return false
			}
			for n := range g1.NodeCount() {
				id := NodeID(n)
				if g1.Label(id) != g2.Label(id) || g1.Kind(id) != g2.Kind(id) {
					return false
				}
			}
			for e := range g1.EdgeCount() {
				a, b := g1.Edge(EdgeID(e)), g2.Edge(EdgeID(e))
				if a.A != b.A || a.B != b.B || len(a.Refs) != len(b.Refs) {
					return false
				}
			}
			return true
		},
		indexes, indexes,
	))

	properties.TestingRun(t)
}
