package cli

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hpdgraph/pkg/api"
	"github.com/matzehuels/hpdgraph/pkg/cache"
	"github.com/matzehuels/hpdgraph/pkg/observability"
	"github.com/matzehuels/hpdgraph/pkg/render/dot"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	addr := api.DefaultAddr

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve portfolios over a read-only HTTP API",
		Long: `Serve portfolios over a read-only HTTP API.

The datasets are loaded once at startup. Prometheus metrics for dataset
loading and HTTP requests are exposed at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics := observability.NewPrometheus(reg)
			observability.SetPipelineHooks(metrics)
			observability.SetHTTPHooks(metrics)
			defer observability.Reset()

			res, err := c.load(cmd)
			if err != nil {
				return err
			}

			srv := api.NewServer(res, api.Options{
				Gatherer: reg,
				Renderer: &dot.Renderer{Cache: cache.NewMemoryCache(), Log: logger},
				Logger:   logger,
			})
			printKeyValue(cmd.ErrOrStderr(), "Portfolios", strconv.Itoa(res.Portfolios.Len()))
			printKeyValue(cmd.ErrOrStderr(), "Listening", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")

	return cmd
}
