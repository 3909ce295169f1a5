package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hpdgraph/pkg/graph"
	"github.com/matzehuels/hpdgraph/pkg/pipeline"
	"github.com/matzehuels/hpdgraph/pkg/portfolio"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	top := pipeline.DefaultTop

	cmd := &cobra.Command{
		Use:   "info [NAME]",
		Short: "Show general information about the graph",
		Long: `Show general information about the graph.

With NAME, also describe the portfolio containing the best match for NAME:
its building count, its most frequently mentioned business addresses and
names, and how many local bridges hold it together.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if top < 0 {
				return fmt.Errorf("--top must not be negative")
			}
			res, err := c.load(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			g := res.Graph
			fmt.Fprintf(w, "Read %d unique names, %d unique addresses, and %d connected components.\n",
				g.CountKind(graph.KindName), g.CountKind(graph.KindBizAddr), res.Portfolios.Len())

			if len(args) == 0 {
				return nil
			}
			p, err := c.findPortfolio(cmd, res, args[0])
			if err != nil {
				return err
			}
			writePortfolioInfo(w, p, res, top)
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "t", top, "show the top N names and business addresses in the portfolio")

	return cmd
}

// findPortfolio resolves name and reports the match on stderr.
func (c *CLI) findPortfolio(cmd *cobra.Command, res *pipeline.Result, name string) (*portfolio.Portfolio, error) {
	p, n, err := res.FindPortfolio(name)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Found a matching name '%s'.\n", res.Graph.Label(n))
	return p, nil
}

func writePortfolioInfo(w io.Writer, p *portfolio.Portfolio, res *pipeline.Result, top int) {
	fmt.Fprintf(w, "This is %s.\n", p.Name())
	fmt.Fprintf(w, "It has %d buildings (%d distinct BINs).\n", p.BuildingCount(), p.BINCount(res.Index))

	fmt.Fprint(w, "\nThe most frequent business addresses mentioned in the portfolio are:\n\n")
	writeRanked(w, p.RankBizAddrs(), top)

	fmt.Fprint(w, "\nThe most frequent names mentioned in the portfolio are:\n\n")
	writeRanked(w, p.RankNames(), top)

	if n := len(p.LocalBridges()); n > 0 {
		plural := ""
		if n > 1 {
			plural = "s"
		}
		fmt.Fprintf(w, "\nThe portfolio has %d local bridge%s.\n\n", n, plural)
	}
}

func writeRanked(w io.Writer, ranked []portfolio.Ranked, top int) {
	for _, r := range ranked[:min(top, len(ranked))] {
		fmt.Fprintf(w, "%s (mentioned in %d HPD registration contacts)\n", r.Label, r.Mentions)
	}
}
