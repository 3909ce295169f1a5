package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus implements [PipelineHooks] and [HTTPHooks] with Prometheus
// collectors registered on the given registerer.
type Prometheus struct {
	LoadRowsTotal    *prometheus.CounterVec
	LoadDuration     *prometheus.HistogramVec
	LoadErrorsTotal  *prometheus.CounterVec
	ContactsTotal    *prometheus.CounterVec
	GraphNodes       prometheus.Gauge
	GraphEdges       prometheus.Gauge
	Portfolios       prometheus.Gauge
	BuildDuration    prometheus.Gauge
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
}

// NewPrometheus creates and registers the collectors.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		LoadRowsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hpdgraph_load_rows_total",
			Help: "Rows read per input dataset",
		}, []string{"dataset"}),
		LoadDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hpdgraph_load_duration_seconds",
			Help:    "Time spent reading an input dataset",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		}, []string{"dataset"}),
		LoadErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hpdgraph_load_errors_total",
			Help: "Dataset loads that failed",
		}, []string{"dataset"}),
		ContactsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hpdgraph_contacts_total",
			Help: "Contact rows by filter outcome",
		}, []string{"outcome"}),
		GraphNodes: f.NewGauge(prometheus.GaugeOpts{
			Name: "hpdgraph_graph_nodes",
			Help: "Nodes in the name/address graph",
		}),
		GraphEdges: f.NewGauge(prometheus.GaugeOpts{
			Name: "hpdgraph_graph_edges",
			Help: "Edges in the name/address graph",
		}),
		Portfolios: f.NewGauge(prometheus.GaugeOpts{
			Name: "hpdgraph_portfolios",
			Help: "Connected components of the graph",
		}),
		BuildDuration: f.NewGauge(prometheus.GaugeOpts{
			Name: "hpdgraph_build_duration_seconds",
			Help: "Time spent building and partitioning the graph",
		}),
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hpdgraph_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hpdgraph_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RequestsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "hpdgraph_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		}),
	}
}

func (p *Prometheus) OnLoadStart(context.Context, string) {}

func (p *Prometheus) OnLoadComplete(_ context.Context, dataset string, rows int, d time.Duration, err error) {
	p.LoadRowsTotal.WithLabelValues(dataset).Add(float64(rows))
	p.LoadDuration.WithLabelValues(dataset).Observe(d.Seconds())
	if err != nil {
		p.LoadErrorsTotal.WithLabelValues(dataset).Inc()
	}
}

func (p *Prometheus) OnContact(_ context.Context, reason string) {
	if reason == "" {
		reason = "accepted"
	}
	p.ContactsTotal.WithLabelValues(reason).Inc()
}

func (p *Prometheus) OnGraphBuilt(_ context.Context, nodes, edges, portfolios int, d time.Duration) {
	p.GraphNodes.Set(float64(nodes))
	p.GraphEdges.Set(float64(edges))
	p.Portfolios.Set(float64(portfolios))
	p.BuildDuration.Set(d.Seconds())
}

func (p *Prometheus) OnRequest(context.Context, string, string) {
	p.RequestsInFlight.Inc()
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.RequestsInFlight.Dec()
	p.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
