package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/matzehuels/hpdgraph/pkg/graph"
)

// fixture builds two components:
//
//	ALICE - 1 A ST - BOB - 2 B ST - CAROL
//	DAN - 9 Z ST
func fixture(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder()
	rows := []struct {
		name, addr string
		reg        uint32
	}{
		{"ALICE", "1 A ST", 1},
		{"ALICE", "1 A ST", 2},
		{"BOB", "1 A ST", 3},
		{"BOB", "2 B ST", 4},
		{"CAROL", "2 B ST", 4},
		{"DAN", "9 Z ST", 9},
	}
	for i, r := range rows {
		if _, err := b.Add(r.name, r.addr, graph.Ref{RegistrationID: r.reg, ContactID: uint32(i)}); err != nil {
			t.Fatal(err)
		}
	}
	return b.Graph()
}

func labels(rs []Ranked) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Label
	}
	return out
}

func TestPartition(t *testing.T) {
	g := fixture(t)
	m := Partition(g)

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	first, second := m.All()[0], m.All()[1]
	if first.Len() != 5 || second.Len() != 2 {
		t.Errorf("sizes = %d, %d; want 5, 2", first.Len(), second.Len())
	}
	if first.Name() != "ALICE's portfolio" {
		t.Errorf("Name() = %q", first.Name())
	}
	if second.Name() != "DAN's portfolio" {
		t.Errorf("Name() = %q", second.Name())
	}

	carol, _ := g.Lookup(graph.KindName, "CAROL")
	if p, ok := m.ForNode(carol); !ok || p != first {
		t.Error("ForNode(CAROL) must return the first portfolio")
	}
	if _, ok := m.ForNode(99); ok {
		t.Error("ForNode(99) ok, want false")
	}
	if p, ok := m.Get(1); !ok || p.Index() != 1 {
		t.Error("Get(1) mismatch")
	}
	if _, ok := m.Get(2); ok {
		t.Error("Get(2) ok, want false")
	}
}

func TestPortfolioWithoutNames(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.KindBizAddr, "1 NOWHERE")
	p := Partition(g).All()[0]
	if p.Name() != "???'s portfolio" {
		t.Errorf("Name() = %q", p.Name())
	}
	if _, ok := p.BestName(); ok {
		t.Error("BestName() ok without name nodes")
	}
}

func TestBuildingCount(t *testing.T) {
	m := Partition(fixture(t))
	tests := []struct {
		index int
		want  int
	}{
		{0, 4},
		{1, 1},
	}
	for _, tt := range tests {
		p, _ := m.Get(tt.index)
		if got := p.BuildingCount(); got != tt.want {
			t.Errorf("portfolio %d BuildingCount() = %d, want %d", tt.index, got, tt.want)
		}
	}
}

type binTable map[uint32][]uint32

func (b binTable) BINs(id uint32) []uint32 { return b[id] }

func TestBINCount(t *testing.T) {
	p := Partition(fixture(t)).All()[0]
	bins := binTable{1: {100}, 2: {100, 101}, 3: {102}, 4: nil}
	if got := p.BINCount(bins); got != 3 {
		t.Errorf("BINCount() = %d, want 3", got)
	}
}

func TestRanking(t *testing.T) {
	p := Partition(fixture(t)).All()[0]

	names := p.RankNames()
	if got, want := labels(names), []string{"ALICE", "BOB", "CAROL"}; !equal(got, want) {
		t.Errorf("RankNames() = %v, want %v", got, want)
	}
	if names[0].Mentions != 2 || names[1].Mentions != 2 || names[2].Mentions != 1 {
		t.Errorf("mentions = %+v", names)
	}

	addrs := p.RankBizAddrs()
	if got, want := labels(addrs), []string{"1 A ST", "2 B ST"}; !equal(got, want) {
		t.Errorf("RankBizAddrs() = %v, want %v", got, want)
	}
}

func TestLocalBridgesSkipPendants(t *testing.T) {
	g := fixture(t)
	p := Partition(g).All()[0]

	bridges := p.LocalBridges()
	if len(bridges) != 2 {
		t.Fatalf("LocalBridges() = %v, want 2 bridges", bridges)
	}
	for _, b := range bridges {
		if g.Degree(b[0]) < 2 || g.Degree(b[1]) < 2 {
			t.Errorf("bridge %v touches a pendant node", b)
		}
	}
	if got := len(p.Finder().FindLocalBridges()); got != 4 {
		t.Errorf("unfiltered bridges = %d, want 4", got)
	}
}

func TestLocalBridgesComputedOnce(t *testing.T) {
	p := Partition(fixture(t)).All()[0]
	first, second := p.LocalBridges(), p.LocalBridges()
	if len(first) == 0 || &first[0] != &second[0] {
		t.Error("LocalBridges() recomputed the bridge set")
	}
}

func TestSummarizeManyPortfoliosScalesLinearly(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a large graph")
	}
	const portfolios = 40000
	b := graph.NewBuilder()
	for i := range portfolios {
		ref := graph.Ref{RegistrationID: uint32(i)}
		if _, err := b.Add(fmt.Sprintf("OWNER %d", i), fmt.Sprintf("%d BROADWAY", i), ref); err != nil {
			t.Fatal(err)
		}
	}
	m := Partition(b.Graph())

	start := time.Now()
	got, err := Summarize(context.Background(), m.All(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Summarize over %d portfolios took %s", portfolios, elapsed)
	}
	if len(got) != portfolios {
		t.Errorf("Summarize() returned %d summaries", len(got))
	}
}

type bblTable map[uint32]string

func (b bblTable) RepresentativeBBL(id uint32) (string, bool) {
	s, ok := b[id]
	return s, ok
}

func TestDocument(t *testing.T) {
	p := Partition(fixture(t)).All()[0]
	doc := p.Document(bblTable{1: "1000010001", 3: "3000010001"})

	if doc.Title != "ALICE's portfolio" {
		t.Errorf("Title = %q", doc.Title)
	}
	if len(doc.Nodes) != 5 || len(doc.Edges) != 4 {
		t.Fatalf("document has %d nodes / %d edges, want 5 / 4", len(doc.Nodes), len(doc.Edges))
	}
	if doc.Nodes[0].Kind != "name" || doc.Nodes[1].Kind != "bizaddr" {
		t.Errorf("kinds = %q, %q", doc.Nodes[0].Kind, doc.Nodes[1].Kind)
	}

	wantBridge := []bool{false, true, true, false}
	wantBBL := []string{"1000010001", "3000010001", "", ""}
	wantContacts := []int{2, 1, 1, 1}
	for i, e := range doc.Edges {
		if e.IsBridge != wantBridge[i] {
			t.Errorf("edge %d IsBridge = %v, want %v", i, e.IsBridge, wantBridge[i])
		}
		if e.BBL != wantBBL[i] {
			t.Errorf("edge %d BBL = %q, want %q", i, e.BBL, wantBBL[i])
		}
		if e.RegContacts != wantContacts[i] {
			t.Errorf("edge %d RegContacts = %d, want %d", i, e.RegContacts, wantContacts[i])
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	edge := decoded["edges"].([]any)[0].(map[string]any)
	for _, key := range []string{"from", "to", "reg_contacts", "is_bridge", "bbl"} {
		if _, ok := edge[key]; !ok {
			t.Errorf("edge JSON missing %q", key)
		}
	}
}

func TestRank(t *testing.T) {
	m := Partition(fixture(t))

	tests := []struct {
		name string
		min  int
		want []int
	}{
		{"all", 0, []int{4, 1}},
		{"threshold", 2, []int{4}},
		{"none", 5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, e := range Rank(m, tt.min) {
				got = append(got, e.Buildings)
			}
			if !equalInts(got, tt.want) {
				t.Errorf("Rank() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankTiesKeepDiscoveryOrder(t *testing.T) {
	b := graph.NewBuilder()
	b.Add("A", "1", graph.Ref{RegistrationID: 1})
	b.Add("B", "2", graph.Ref{RegistrationID: 2})
	b.Add("C", "3", graph.Ref{RegistrationID: 3})
	b.Add("C", "3", graph.Ref{RegistrationID: 4})
	m := Partition(b.Graph())

	ranked := Rank(m, 0)
	var got []string
	for _, e := range ranked {
		got = append(got, e.Portfolio.Name())
	}
	want := []string{"C's portfolio", "A's portfolio", "B's portfolio"}
	if !equal(got, want) {
		t.Errorf("Rank() = %v, want %v", got, want)
	}
}

func TestSummarize(t *testing.T) {
	m := Partition(fixture(t))
	got, err := Summarize(context.Background(), m.All(), binTable{9: {900}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("Summarize() returned %d summaries", len(got))
	}
	if got[0].Title != "ALICE's portfolio" || got[0].Buildings != 4 || got[0].Bridges != 2 || got[0].Nodes != 5 {
		t.Errorf("summary[0] = %+v", got[0])
	}
	if got[1].BINs != 1 || got[1].Index != 1 {
		t.Errorf("summary[1] = %+v", got[1])
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Summarize(ctx, m.All(), nil); err == nil {
		t.Error("Summarize() with cancelled context must fail")
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
