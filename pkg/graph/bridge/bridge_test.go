package bridge

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/hpdgraph/pkg/graph"
)

// buildGraph creates nodes 0..n-1 and the given edges.
func buildGraph(t testing.TB, n int, edges [][2]int) *graph.Graph {
	t.Helper()
	g := graph.New()
	for i := range n {
		if _, err := g.AddNode(graph.KindName, fmt.Sprint(i)); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range edges {
		if _, err := g.AddEdge(graph.NodeID(e[0]), graph.NodeID(e[1])); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

// twoTriangles is {1,2,3} and {4,5,6} joined by (1,4). Node 0 is isolated.
func twoTriangles(t testing.TB) *graph.Graph {
	return buildGraph(t, 7, [][2]int{
		{1, 2}, {2, 3}, {3, 1},
		{4, 5}, {5, 6}, {6, 4},
		{1, 4},
	})
}

func sameEdge(p Pair, a, b graph.NodeID) bool {
	return (p[0] == a && p[1] == b) || (p[0] == b && p[1] == a)
}

func TestTwoTrianglesEveryRoot(t *testing.T) {
	g := twoTriangles(t)
	for root := graph.NodeID(1); root <= 6; root++ {
		t.Run(fmt.Sprintf("root %d", root), func(t *testing.T) {
			f := New(g, root)

			for _, args := range [][2]graph.NodeID{{1, 4}, {4, 1}} {
				ok, applicable := f.IsLocalBridge(args[0], args[1])
				if !applicable || !ok {
					t.Errorf("IsLocalBridge(%d, %d) = %v, %v; want true, true", args[0], args[1], ok, applicable)
				}
			}
			if ok, applicable := f.IsLocalBridge(1, 2); !applicable || ok {
				t.Errorf("IsLocalBridge(1, 2) = %v, %v; want false, true", ok, applicable)
			}

			bridges := f.FindLocalBridges()
			if len(bridges) != 1 || !sameEdge(bridges[0], 1, 4) {
				t.Errorf("FindLocalBridges() = %v, want [(1,4)]", bridges)
			}
		})
	}
}

func TestNotApplicable(t *testing.T) {
	g := twoTriangles(t)
	f := New(g, 1)

	tests := []struct {
		name string
		a, b graph.NodeID
	}{
		{"both outside graph", 100, 101},
		{"one outside graph", 1, 100},
		{"isolated node", 0, 1},
		{"negative", -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, applicable := f.IsLocalBridge(tt.a, tt.b); applicable {
				t.Errorf("IsLocalBridge(%d, %d) applicable, want not applicable", tt.a, tt.b)
			}
		})
	}

	if ok, applicable := f.IsLocalBridge(2, 5); ok || !applicable {
		t.Errorf("non-adjacent pair = %v, %v; want false, true", ok, applicable)
	}
}

func TestUnknownStart(t *testing.T) {
	g := twoTriangles(t)
	f := New(g, 100)
	if f.Visited(1) {
		t.Error("unknown start must visit nothing")
	}
	if got := f.FindLocalBridges(); len(got) != 0 {
		t.Errorf("FindLocalBridges() = %v, want none", got)
	}
}

func TestDeepPath(t *testing.T) {
	const n = 100000
	edges := make([][2]int, 0, n-1)
	for i := 1; i < n; i++ {
		edges = append(edges, [2]int{i - 1, i})
	}
	g := buildGraph(t, n, edges)

	f := New(g, 0)
	if got := len(f.FindLocalBridges()); got != n-1 {
		t.Errorf("path of %d nodes has %d local bridges, want %d", n, got, n-1)
	}
}

// disconnects reports whether removing edge skip separates a from b.
func disconnects(n int, edges [][2]int, skip int) bool {
	adj := make([][]int, n)
	for i, e := range edges {
		if i == skip {
			continue
		}
		adj[e[0]] = append(adj[e[0]], e[1])
		adj[e[1]] = append(adj[e[1]], e[0])
	}
	from, to := edges[skip][0], edges[skip][1]
	seen := make([]bool, n)
	seen[from] = true
	queue := []int{from}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, m := range adj[v] {
			if !seen[m] {
				seen[m] = true
				queue = append(queue, m)
			}
		}
	}
	return !seen[to]
}

func TestMatchesEdgeRemoval(t *testing.T) {
	const n = 8
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	properties.Property("local bridges are the component's cut edges", prop.ForAll(
		func(raw []uint8, root uint8) bool {
			var edges [][2]int
			seen := make(map[[2]int]bool)
			for i := 0; i+1 < len(raw); i += 2 {
				a, b := int(raw[i]%n), int(raw[i+1]%n)
				if a == b {
					continue
				}
				key := [2]int{min(a, b), max(a, b)}
				if seen[key] {
					continue
				}
				seen[key] = true
				edges = append(edges, [2]int{a, b})
			}
			g := buildGraph(t, n, edges)
			f := New(g, graph.NodeID(root%n))

			for i, e := range edges {
				a, b := graph.NodeID(e[0]), graph.NodeID(e[1])
				ok, applicable := f.IsLocalBridge(a, b)
				if applicable != f.Visited(a) {
					return false
				}
				if applicable && ok != disconnects(n, edges, i) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt8()),
		gen.UInt8(),
	))
	properties.TestingRun(t)
}

func TestFinderSizedToComponent(t *testing.T) {
	// Two triangles joined by (1,4), plus a long path that the traversal
	// from 0 never reaches.
	edges := [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}, {1, 4}}
	const n = 10006
	for i := 7; i < n; i++ {
		edges = append(edges, [2]int{i - 1, i})
	}
	g := buildGraph(t, n, edges)

	f := New(g, 0)
	if f.Len() != 6 {
		t.Errorf("Len() = %d, want the 6 nodes of the component", f.Len())
	}
	if f.Visited(8) {
		t.Error("node outside the component reported visited")
	}
	if got := f.FindLocalBridges(); len(got) != 1 {
		t.Errorf("FindLocalBridges() = %v, want only the joining edge", got)
	}
}
