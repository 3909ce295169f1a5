package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hpdgraph/pkg/graph"
	"github.com/matzehuels/hpdgraph/pkg/portfolio"
)

// Options configures DOT generation.
type Options struct {
	// Bridges highlights the portfolio's local bridges.
	Bridges bool
}

// ToDOT converts a portfolio to Graphviz DOT. Nodes appear in portfolio
// order and edges in [portfolio.Portfolio.Edges] order.
func ToDOT(p *portfolio.Portfolio, opts Options) string {
	g := p.Graph()

	bridges := make(map[graph.EdgeID]bool)
	if opts.Bridges {
		for _, b := range p.LocalBridges() {
			if e, ok := g.EdgeBetween(b[0], b[1]); ok {
				bridges[e] = true
			}
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// %s\n\n", p.Name())
	buf.WriteString("graph {\n")
	for _, n := range p.Nodes() {
		fmt.Fprintf(&buf, "    %d [ %s ]\n", n, strings.Join(nodeAttrs(g, n), ", "))
	}
	for _, id := range p.Edges() {
		e := g.Edge(id)
		attrs := []string{fmt.Sprintf(`label="%d"`, len(e.Refs))}
		if bridges[id] {
			attrs = append(attrs, "color=red", "penwidth=3")
		}
		fmt.Fprintf(&buf, "    %d -- %d [ %s ]\n", e.A, e.B, strings.Join(attrs, ", "))
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(g *graph.Graph, n graph.NodeID) []string {
	attrs := []string{"label=" + quote(g.Label(n))}
	if g.Kind(n) == graph.KindBizAddr {
		return append(attrs, "color=lightblue2", "style=filled", "shape=box")
	}
	return append(attrs, "color=whitesmoke", "style=filled")
}

// quote renders s as a DOT double-quoted string.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

// RenderSVG lays out DOT source and returns the SVG document.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales with
// its container when embedded in a page.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="100%%" preserveAspectRatio="xMidYMid meet">`, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
