package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hpdgraph/pkg/portfolio"
)

// rankingCommand creates the ranking command.
func (c *CLI) rankingCommand() *cobra.Command {
	var (
		minBuildings int
		asTable      bool
	)

	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Show a ranking of the largest portfolios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if minBuildings < 0 {
				return fmt.Errorf("--min-buildings must not be negative")
			}
			res, err := c.load(cmd)
			if err != nil {
				return err
			}
			ranked := portfolio.Rank(res.Portfolios, minBuildings)
			if asTable {
				fmt.Fprintln(cmd.OutOrStdout(), rankingTable(ranked))
				return nil
			}
			writeRanking(cmd.OutOrStdout(), ranked)
			return nil
		},
	}

	cmd.Flags().IntVarP(&minBuildings, "min-buildings", "b", 0, "only show portfolios of a minimum size")
	cmd.Flags().BoolVar(&asTable, "table", false, "render the ranking as a table")

	return cmd
}

func writeRanking(w io.Writer, ranked []portfolio.Entry) {
	for i, e := range ranked {
		fmt.Fprintf(w, "%d. %s - %d buildings\n", i+1, e.Portfolio.Name(), e.Buildings)
	}
}

func rankingTable(ranked []portfolio.Entry) string {
	rows := make([][]string, len(ranked))
	for i, e := range ranked {
		rows[i] = []string{strconv.Itoa(i + 1), e.Portfolio.Name(), strconv.Itoa(e.Buildings), strconv.Itoa(e.Portfolio.Len())}
	}
	return portfolioTable([]string{"#", "Portfolio", "Buildings", "Nodes"}, rows, 1, -1)
}
