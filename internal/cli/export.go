package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hpdgraph/pkg/render/dot"
)

// dotCommand creates the dot command.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		svgPath   string
		noBridges bool
	)

	cmd := &cobra.Command{
		Use:   "dot NAME",
		Short: "Output a dot graph of a particular portfolio",
		Long: `Output a dot graph of a particular portfolio.

Local bridges are highlighted unless --no-bridges is given. With --svg, the
graph is also rendered to an SVG file.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.load(cmd)
			if err != nil {
				return err
			}
			p, err := c.findPortfolio(cmd, res, args[0])
			if err != nil {
				return err
			}
			src := dot.ToDOT(p, dot.Options{Bridges: !noBridges})
			if svgPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), src)
				return nil
			}

			svg, err := dot.RenderSVG(cmd.Context(), src)
			if err != nil {
				return err
			}
			if err := os.WriteFile(svgPath, svg, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", svgPath, err)
			}
			printSuccess(cmd.ErrOrStderr(), "Rendered %s", p.Name())
			printFile(cmd.ErrOrStderr(), svgPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&svgPath, "svg", "", "render the graph to this SVG file instead of printing DOT")
	cmd.Flags().BoolVar(&noBridges, "no-bridges", false, "do not highlight local bridges")

	return cmd
}

// jsonCommand creates the json command.
func (c *CLI) jsonCommand() *cobra.Command {
	var indent bool

	cmd := &cobra.Command{
		Use:               "json NAME",
		Short:             "Output JSON of a particular portfolio",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.load(cmd)
			if err != nil {
				return err
			}
			p, err := c.findPortfolio(cmd, res, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			if indent {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(p.Document(res.Index))
		},
	}

	cmd.Flags().BoolVar(&indent, "indent", false, "pretty-print the document")

	return cmd
}
