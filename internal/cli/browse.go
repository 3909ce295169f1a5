package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hpdgraph/pkg/pipeline"
	"github.com/matzehuels/hpdgraph/pkg/portfolio"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var minBuildings int
	top := pipeline.DefaultTop

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a portfolio interactively and show its details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if minBuildings < 0 {
				return fmt.Errorf("--min-buildings must not be negative")
			}
			res, err := c.load(cmd)
			if err != nil {
				return err
			}

			model := NewPortfolioListModel(portfolio.Rank(res.Portfolios, minBuildings))
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			selected := final.(PortfolioListModel).Selected
			if selected == nil {
				return nil
			}
			writePortfolioInfo(cmd.OutOrStdout(), selected, res, top)
			return nil
		},
	}

	cmd.Flags().IntVarP(&minBuildings, "min-buildings", "b", 1, "only list portfolios of a minimum size")
	cmd.Flags().IntVarP(&top, "top", "t", top, "show the top N names and business addresses of the selection")

	return cmd
}
