package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hpdgraph/pkg/render/dot"
	"github.com/matzehuels/hpdgraph/pkg/site"
)

// websiteCommand creates the website command.
func (c *CLI) websiteCommand() *cobra.Command {
	opts := site.Options{OutDir: "public"}
	var noCache bool

	cmd := &cobra.Command{
		Use:   "website",
		Short: "Export ranked portfolios as a static website",
		Long: `Export ranked portfolios as a static website.

Each portfolio with at least --min-buildings buildings gets a directory with
an HTML page, its structured JSON document and a rendered SVG graph. The
output directory also receives a ranking page and a name search index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.MinBuildings < 0 {
				return fmt.Errorf("--min-buildings must not be negative")
			}
			res, err := c.load(cmd)
			if err != nil {
				return err
			}
			opts.Lookup = res.Index
			opts.Logger = c.Logger
			renderCache, err := newCache(noCache, c.Logger)
			if err != nil {
				return err
			}
			defer renderCache.Close()
			opts.Renderer = &dot.Renderer{Cache: renderCache, Log: c.Logger}

			spinner := newSpinnerWithContext(cmd.Context(), "Exporting portfolios...")
			spinner.Start()
			out, err := site.Export(cmd.Context(), res.Portfolios, opts)
			spinner.Stop()
			if err != nil {
				return fmt.Errorf("export website: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d portfolios.\n", len(out.Pages))
			if len(out.Pages) == 0 {
				printWarning(cmd.ErrOrStderr(), "No portfolio has at least %d buildings", opts.MinBuildings)
			}
			printFile(cmd.ErrOrStderr(), opts.OutDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", opts.OutDir, "output directory")
	cmd.Flags().IntVarP(&opts.MinBuildings, "min-buildings", "b", 0, "only export portfolios of a minimum size")
	cmd.Flags().BoolVar(&opts.SkipSVG, "no-svg", false, "skip rendering graphs")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "render every graph instead of reusing cached SVGs")

	return cmd
}
