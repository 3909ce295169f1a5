// Package observability provides hooks for metrics and logging.
//
// Library packages emit events through the registered hooks without
// depending on a metrics backend. The defaults are no-ops; main registers a
// real implementation such as [Prometheus] at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := observability.NewPrometheus(prometheus.NewRegistry())
//	    observability.SetPipelineHooks(m)
//	    observability.SetHTTPHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	hooks := observability.Pipeline()
//	hooks.OnLoadStart(ctx, observability.DatasetContacts)
//	// ... read rows ...
//	hooks.OnLoadComplete(ctx, observability.DatasetContacts, rows, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Dataset names passed to [PipelineHooks].
const (
	DatasetRegistrations = "registrations"
	DatasetContacts      = "contacts"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from dataset loading and graph construction.
type PipelineHooks interface {
	// Load events, one pair per dataset
	OnLoadStart(ctx context.Context, dataset string)
	OnLoadComplete(ctx context.Context, dataset string, rows int, duration time.Duration, err error)

	// OnContact records the outcome of the record filter for one contact row.
	// An empty reason means the contact was accepted.
	OnContact(ctx context.Context, reason string)

	// OnGraphBuilt records the finished graph and its partition.
	OnGraphBuilt(ctx context.Context, nodes, edges, portfolios int, duration time.Duration)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request before it is handled.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response to a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnContact(context.Context, string)                                 {}
func (NoopPipelineHooks) OnGraphBuilt(context.Context, int, int, int, time.Duration)        {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	httpHooks = NoopHTTPHooks{}
}
