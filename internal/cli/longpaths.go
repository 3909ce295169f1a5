package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hpdgraph/pkg/graph/path"
	"github.com/matzehuels/hpdgraph/pkg/pipeline"
)

// longpathsCommand creates the longpaths command.
func (c *CLI) longpathsCommand() *cobra.Command {
	minLength := pipeline.DefaultMinPathLength

	cmd := &cobra.Command{
		Use:   "longpaths",
		Short: "Show the longest paths in the graph",
		Long: `Show the longest paths in the graph.

For each group of connected names, starting from the first name seen in the
contacts dataset, print the shortest path to the name farthest from it when
that path has at least --min-length edges.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if minLength < 0 {
				return fmt.Errorf("--min-length must not be negative")
			}
			res, err := c.load(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "\nPaths with minimum length %d:\n\n", minLength)
			paths, _ := path.Longest(res.Graph, minLength, nil)
			for _, p := range paths {
				fmt.Fprintf(w, "length %d path: %s\n\n", p.Length, path.Format(res.Graph, p.Nodes))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&minLength, "min-length", "m", minLength, "only show paths with this minimum length")

	return cmd
}
