// Package pipeline loads the HPD datasets and builds the portfolio graph.
//
// This package is the one place the CLI, the website exporter and the HTTP
// server share: every entry point fills an [Options], calls [Runner.Load],
// and queries the resulting [Result].
//
// # Stages
//
//  1. Registrations: read the registrations table into a validity index,
//     dropping registrations that ended too long ago.
//  2. Contacts: stream the contacts table through the record filter and
//     intern accepted rows into the name/address graph.
//  3. Partition: split the graph into portfolios.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Load(ctx, pipeline.Options{
//	    RegistrationsPath: "Multiple_Dwelling_Registrations.csv",
//	    ContactsPath:      "Registration_Contacts.csv",
//	})
//	if err != nil {
//	    return err
//	}
//	p, _, err := result.FindPortfolio("SMITH")
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hpdgraph/pkg/errors"
	"github.com/matzehuels/hpdgraph/pkg/graph"
	"github.com/matzehuels/hpdgraph/pkg/hpd"
	"github.com/matzehuels/hpdgraph/pkg/portfolio"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, website and server
// =============================================================================

const (
	// DefaultRegistrationsPath is the file name of the NYC Open Data export of
	// multiple dwelling registrations.
	DefaultRegistrationsPath = "Multiple_Dwelling_Registrations.csv"

	// DefaultContactsPath is the file name of the registration contacts export.
	DefaultContactsPath = "Registration_Contacts.csv"

	// DefaultMaxExpirationAge is the number of days a registration may have
	// been expired and still count.
	DefaultMaxExpirationAge = hpd.DefaultMaxExpirationAge

	// DefaultTop is the number of ranked names and addresses shown by info.
	DefaultTop = 5

	// DefaultMinPathLength is the shortest path reported by longpaths.
	DefaultMinPathLength = 10
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for loading the datasets.
type Options struct {
	RegistrationsPath string `toml:"registrations"`
	ContactsPath      string `toml:"contacts"`
	MaxExpirationAge  int    `toml:"max_expiration_age"`
	IncludeCorps      bool   `toml:"include_corps"`
	SynonymsPath      string `toml:"synonyms"` // empty selects the built-in table

	// Runtime options (not read from config files)
	Today  time.Time   `toml:"-"` // reference date for registration ages; zero means today
	Logger *log.Logger `toml:"-"`

	validated bool
}

// Result holds the loaded datasets and the derived graph.
type Result struct {
	Index      *hpd.Index
	Graph      *graph.Graph
	Portfolios *portfolio.Map
	Stats      Stats
}

// Stats contains load statistics.
type Stats struct {
	Registrations hpd.IndexStats
	Contacts      int                // contact rows read
	Accepted      int                // contact rows that became edges
	Rejected      map[hpd.Reason]int // per filter rule
	LoadTime      time.Duration
	BuildTime     time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks option values and fills in defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MaxExpirationAge < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max expiration age must not be negative: %d", o.MaxExpirationAge)
	}
	o.SetDefaults()
	o.validated = true
	return nil
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.RegistrationsPath == "" {
		o.RegistrationsPath = DefaultRegistrationsPath
	}
	if o.ContactsPath == "" {
		o.ContactsPath = DefaultContactsPath
	}
	if o.MaxExpirationAge == 0 {
		o.MaxExpirationAge = DefaultMaxExpirationAge
	}
	if o.Today.IsZero() {
		o.Today = time.Now()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// =============================================================================
// Result Methods
// =============================================================================

// FindPortfolio returns the portfolio containing the name that matches query
// exactly, or else the first name containing it. The matched node is
// returned so callers can report which name was chosen.
func (r *Result) FindPortfolio(query string) (*portfolio.Portfolio, graph.NodeID, error) {
	n, ok := r.Graph.FindName(query)
	if !ok {
		return nil, 0, errors.New(errors.ErrCodeNameNotFound, "unable to find a match for the name %q", query)
	}
	p, ok := r.Portfolios.ForNode(n)
	if !ok {
		return nil, 0, errors.New(errors.ErrCodeInternal, "node %d has no portfolio", n)
	}
	return p, n, nil
}

// Portfolio returns the portfolio with the given index.
func (r *Result) Portfolio(index int) (*portfolio.Portfolio, error) {
	p, ok := r.Portfolios.Get(index)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no portfolio with index %d", index)
	}
	return p, nil
}
