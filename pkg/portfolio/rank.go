package portfolio

import (
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Entry is a portfolio with its building count.
type Entry struct {
	Portfolio *Portfolio
	Buildings int
}

// Rank returns the portfolios with at least minBuildings buildings, by
// descending building count. Ties keep discovery order.
func Rank(m *Map, minBuildings int) []Entry {
	var out []Entry
	for _, p := range m.All() {
		if n := p.BuildingCount(); n >= minBuildings {
			out = append(out, Entry{Portfolio: p, Buildings: n})
		}
	}
	slices.SortStableFunc(out, func(a, b Entry) int { return b.Buildings - a.Buildings })
	return out
}

// Summary collects the per-portfolio statistics shown by listings.
type Summary struct {
	Index     int    `json:"index"`
	Title     string `json:"title"`
	Nodes     int    `json:"nodes"`
	Buildings int    `json:"buildings"`
	BINs      int    `json:"bins"`
	Bridges   int    `json:"local_bridges"`
}

// Summarize computes a [Summary] for each portfolio in parallel. Results keep
// the order of ps. A nil lookup reports zero BINs.
func Summarize(ctx context.Context, ps []*Portfolio, lookup BINLookup) ([]Summary, error) {
	out := make([]Summary, len(ps))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, p := range ps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := Summary{
				Index:     p.Index(),
				Title:     p.Name(),
				Nodes:     p.Len(),
				Buildings: p.BuildingCount(),
				Bridges:   len(p.LocalBridges()),
			}
			if lookup != nil {
				s.BINs = p.BINCount(lookup)
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
