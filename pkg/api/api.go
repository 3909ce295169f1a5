// Package api serves the in-memory portfolios over HTTP.
//
// Routes:
//
//	GET /healthz
//	GET /metrics
//	GET /portfolios?min_buildings=B     ranked portfolio summaries
//	GET /portfolios/{index}             structured portfolio document
//	GET /portfolios/{index}/dot         DOT source
//	GET /portfolios/{index}/svg         rendered graph
//	GET /search?name=Q                  portfolio containing the best name match
//
// Every request is reported to [observability.HTTP] with its chi route
// pattern, so metrics stay bounded by the route table rather than by the
// set of requested paths.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/hpdgraph/pkg/buildinfo"
	hpderrors "github.com/matzehuels/hpdgraph/pkg/errors"
	"github.com/matzehuels/hpdgraph/pkg/observability"
	"github.com/matzehuels/hpdgraph/pkg/pipeline"
	"github.com/matzehuels/hpdgraph/pkg/portfolio"
	"github.com/matzehuels/hpdgraph/pkg/render/dot"
)

const (
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
)

// Options configures a [Server].
type Options struct {
	// Gatherer backs /metrics. Nil uses prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Renderer memoizes /svg responses. Nil renders on every request.
	Renderer *dot.Renderer

	Logger *log.Logger
}

// Server answers read-only queries against a loaded [pipeline.Result].
type Server struct {
	result   *pipeline.Result
	gatherer prometheus.Gatherer
	renderer *dot.Renderer
	logger   *log.Logger
	router   chi.Router
}

// NewServer builds the route table for res.
func NewServer(res *pipeline.Result, opts Options) *Server {
	s := &Server{result: res, gatherer: opts.Gatherer, renderer: opts.Renderer, logger: opts.Logger}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/search", s.search)
	r.Get("/portfolios", s.listPortfolios)
	r.Get("/portfolios/{index}", s.getPortfolio)
	r.Get("/portfolios/{index}/dot", s.getDOT)
	r.Get("/portfolios/{index}/svg", s.getSVG)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Middleware
// =============================================================================

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		start := time.Now()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("Server", buildinfo.UserAgent())
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", d)
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Current()})
}

func (s *Server) listPortfolios(w http.ResponseWriter, r *http.Request) {
	minBuildings := 0
	if v := r.URL.Query().Get("min_buildings"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, hpderrors.New(hpderrors.ErrCodeInvalidInput, "min_buildings must be a non-negative integer"))
			return
		}
		minBuildings = n
	}

	ranked := portfolio.Rank(s.result.Portfolios, minBuildings)
	ps := make([]*portfolio.Portfolio, len(ranked))
	for i, e := range ranked {
		ps[i] = e.Portfolio
	}
	summaries, err := portfolio.Summarize(r.Context(), ps, s.result.Index)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) getPortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := s.portfolio(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p.Document(s.result.Index))
}

func (s *Server) getDOT(w http.ResponseWriter, r *http.Request) {
	p, err := s.portfolio(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	io.WriteString(w, dot.ToDOT(p, dot.Options{Bridges: r.URL.Query().Get("bridges") != "false"}))
}

func (s *Server) getSVG(w http.ResponseWriter, r *http.Request) {
	p, err := s.portfolio(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	svg, err := s.renderer.RenderSVG(r.Context(), dot.ToDOT(p, dot.Options{Bridges: true}))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg)
}

// SearchResult is the body of a successful /search response.
type SearchResult struct {
	Query     string            `json:"query"`
	Name      string            `json:"name"`
	Portfolio portfolio.Summary `json:"portfolio"`
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("name")
	if q == "" {
		s.writeError(w, hpderrors.New(hpderrors.ErrCodeInvalidInput, "name is required"))
		return
	}
	p, n, err := s.result.FindPortfolio(q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	summaries, err := portfolio.Summarize(r.Context(), []*portfolio.Portfolio{p}, s.result.Index)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResult{
		Query:     q,
		Name:      s.result.Graph.Label(n),
		Portfolio: summaries[0],
	})
}

func (s *Server) portfolio(r *http.Request) (*portfolio.Portfolio, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return nil, hpderrors.New(hpderrors.ErrCodeInvalidInput, "invalid portfolio index %q", raw)
	}
	return s.result.Portfolio(index)
}

// =============================================================================
// Responses
// =============================================================================

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func statusFor(code hpderrors.Code) int {
	switch code {
	case hpderrors.ErrCodeInvalidInput, hpderrors.ErrCodeInvalidBBL:
		return http.StatusBadRequest
	case hpderrors.ErrCodeNotFound, hpderrors.ErrCodeNameNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := hpderrors.GetCode(err)
	if code == "" {
		code = hpderrors.ErrCodeInternal
	}
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, ErrorBody{Code: string(code), Message: hpderrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
