package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hpdgraph/pkg/graph"
	"github.com/matzehuels/hpdgraph/pkg/pipeline"
)

// maxNameCompletions caps how many portfolio names a single completion
// request returns.
const maxNameCompletions = 50

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for hpdgraph.

Completion for info, dot and json reads the configured datasets and offers
matching contact names, so it is only as fast as a full load.

  $ source <(hpdgraph completion bash)
  $ hpdgraph completion zsh > "${fpath[1]}/_hpdgraph"
  $ hpdgraph completion fish | source
  PS> hpdgraph completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}
}

// completeNames offers contact names starting with the typed prefix. Names are
// stored upper-case, so the prefix is matched case-insensitively.
func (c *CLI) completeNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	opts, err := c.options(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	// Completion output is parsed by the shell; keep the load quiet.
	quiet := log.NewWithOptions(io.Discard, log.Options{})
	res, err := pipeline.NewRunner(quiet).Load(ctx, opts)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return namesWithPrefix(res.Graph, toComplete, maxNameCompletions), cobra.ShellCompDirectiveNoFileComp
}

func namesWithPrefix(g *graph.Graph, prefix string, limit int) []string {
	prefix = strings.ToUpper(prefix)
	var out []string
	for id := graph.NodeID(0); int(id) < g.NodeCount() && len(out) < limit; id++ {
		if g.Kind(id) == graph.KindName && strings.HasPrefix(g.Label(id), prefix) {
			out = append(out, g.Label(id))
		}
	}
	return out
}
