// Package site exports ranked portfolios as a static website.
//
// The output directory receives one subdirectory per portfolio:
//
//	DIR/index.html              ranking of every exported portfolio
//	DIR/styles.css
//	DIR/search.json             name -> portfolio slug, for the search form
//	DIR/<slug>/index.html       title, graph and search form
//	DIR/<slug>/portfolio.json   the portfolio document
//	DIR/<slug>/graph.svg        the rendered graph
//
// Pages reference a client bundle at DIR/main.bundle.js, which is built
// separately.
package site

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hpdgraph/pkg/errors"
	"github.com/matzehuels/hpdgraph/pkg/graph"
	"github.com/matzehuels/hpdgraph/pkg/portfolio"
	"github.com/matzehuels/hpdgraph/pkg/render/dot"
)

//go:embed assets
var assets embed.FS

var (
	portfolioTmpl = template.Must(template.ParseFS(assets, "assets/portfolio.html"))
	indexTmpl     = template.Must(template.ParseFS(assets, "assets/index.html"))
)

// Options configures [Export].
type Options struct {
	// OutDir is created if missing. Required.
	OutDir string

	// MinBuildings excludes smaller portfolios.
	MinBuildings int

	// Lookup fills in representative BBLs. Nil leaves them empty.
	Lookup portfolio.BBLLookup

	// SkipSVG omits graph.svg and the inline drawing.
	SkipSVG bool

	// Renderer memoizes SVG renders. Nil renders every graph.
	Renderer *dot.Renderer

	Logger *log.Logger
}

// Page describes one exported portfolio.
type Page struct {
	Rank      int
	Slug      string
	Title     string
	Buildings int
	Names     int
	Addresses int
	SVG       template.HTML
}

// Result lists the exported pages in ranking order.
type Result struct {
	Pages []Page
}

// Export writes the website for every portfolio in m that has at least
// opts.MinBuildings buildings.
func Export(ctx context.Context, m *portfolio.Map, opts Options) (*Result, error) {
	if opts.OutDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "output directory is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeWriteFailed, err, "create output directory %s", opts.OutDir)
	}

	ranked := portfolio.Rank(m, opts.MinBuildings)
	pages := make([]Page, len(ranked))
	search := make(map[string]string)
	for i, e := range ranked {
		pages[i] = newPage(i+1, e)
		for _, n := range e.Portfolio.Nodes() {
			if m.Graph().Kind(n) == graph.KindName {
				search[m.Graph().Label(n)] = pages[i].Slug
			}
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, e := range ranked {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writePortfolio(ctx, opts, &pages[i], e.Portfolio); err != nil {
				return err
			}
			logger.Debug("exported portfolio", "slug", pages[i].Slug, "buildings", e.Buildings)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := writeIndex(opts.OutDir, pages, search); err != nil {
		return nil, err
	}
	return &Result{Pages: pages}, nil
}

func newPage(rank int, e portfolio.Entry) Page {
	p := e.Portfolio
	return Page{
		Rank:      rank,
		Slug:      Slug(p),
		Title:     p.Name(),
		Buildings: e.Buildings,
		Names:     len(p.RankNames()),
		Addresses: len(p.RankBizAddrs()),
	}
}

func writePortfolio(ctx context.Context, opts Options, page *Page, p *portfolio.Portfolio) error {
	dir := filepath.Join(opts.OutDir, page.Slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "create %s", dir)
	}

	doc, err := json.Marshal(p.Document(opts.Lookup))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "portfolio %s: encode document", page.Slug)
	}
	if err := writeFile(filepath.Join(dir, "portfolio.json"), doc); err != nil {
		return err
	}

	if !opts.SkipSVG {
		svg, err := opts.Renderer.RenderSVG(ctx, dot.ToDOT(p, dot.Options{Bridges: true}))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "portfolio %s: render svg", page.Slug)
		}
		if err := writeFile(filepath.Join(dir, "graph.svg"), svg); err != nil {
			return err
		}
		page.SVG = template.HTML(svg)
	}

	err = writeTemplate(filepath.Join(dir, "index.html"), portfolioTmpl, page)
	// The SVG is only needed while rendering the page.
	page.SVG = ""
	return err
}

func writeIndex(dir string, pages []Page, search map[string]string) error {
	css, err := assets.ReadFile("assets/styles.css")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "read embedded stylesheet")
	}
	if err := writeFile(filepath.Join(dir, "styles.css"), css); err != nil {
		return err
	}

	data, err := json.Marshal(search)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode search index")
	}
	if err := writeFile(filepath.Join(dir, "search.json"), data); err != nil {
		return err
	}
	return writeTemplate(filepath.Join(dir, "index.html"), indexTmpl, struct{ Pages []Page }{pages})
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
	}
	return nil
}

func writeTemplate(path string, tmpl *template.Template, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "create %s", path)
	}
	if err := tmpl.Execute(f, data); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "render %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug returns a directory name for p that is unique within its map: the
// portfolio index followed by its best name in lowercase ASCII.
func Slug(p *portfolio.Portfolio) string {
	name := portfolio.UnknownName
	if n, ok := p.BestName(); ok {
		name = p.Graph().Label(n)
	}
	s := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if s == "" {
		return fmt.Sprintf("%d", p.Index())
	}
	return fmt.Sprintf("%d-%s", p.Index(), s)
}
