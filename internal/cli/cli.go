package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hpdgraph/pkg/buildinfo"
	"github.com/matzehuels/hpdgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "hpdgraph"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Persistent flag values, merged with the config file by options.
	configPath string
	verbose    bool
	flags      pipeline.Options
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "hpdgraph explores the ownership graph behind NYC HPD registrations",
		Long: `hpdgraph reads the NYC Housing Preservation & Development registration
datasets, links people and business addresses that appear together on
registration contacts, and treats each connected group as a landlord portfolio.`,
		Version:       buildinfo.Current(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.RegistrationsPath, "registrations", pipeline.DefaultRegistrationsPath, "multiple dwelling registrations CSV")
	pf.StringVar(&c.flags.ContactsPath, "contacts", pipeline.DefaultContactsPath, "registration contacts CSV")
	pf.IntVar(&c.flags.MaxExpirationAge, "max-expiration-age", pipeline.DefaultMaxExpirationAge, "ignore registrations that expired more than this many days ago")
	pf.BoolVar(&c.flags.IncludeCorps, "include-corps", false, "include corporation names in portfolios")
	pf.StringVar(&c.flags.SynonymsPath, "synonyms", "", "TOML synonym table (default: built-in)")
	pf.StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/hpdgraph/config.toml)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.rankingCommand())
	root.AddCommand(c.longpathsCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.jsonCommand())
	root.AddCommand(c.websiteCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.completionCommand())

	return root
}
