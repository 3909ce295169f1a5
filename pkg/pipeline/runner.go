package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hpdgraph/pkg/errors"
	"github.com/matzehuels/hpdgraph/pkg/graph"
	"github.com/matzehuels/hpdgraph/pkg/hpd"
	"github.com/matzehuels/hpdgraph/pkg/observability"
	"github.com/matzehuels/hpdgraph/pkg/portfolio"
)

// contextCheckInterval is how many contact rows are read between checks for
// cancellation.
const contextCheckInterval = 10000

// Runner executes the load pipeline. It holds no results, so one Runner can
// serve several loads.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Load opens both datasets named in opts and builds the graph.
func (r *Runner) Load(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	regs, err := openDataset(opts.RegistrationsPath)
	if err != nil {
		return nil, err
	}
	defer regs.Close()

	contacts, err := openDataset(opts.ContactsPath)
	if err != nil {
		return nil, err
	}
	defer contacts.Close()

	return r.LoadFrom(ctx, regs, contacts, opts)
}

func openDataset(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.InDataset(errors.Wrap(errors.ErrCodeFileNotFound, err, "not found"), path)
	}
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	return f, nil
}

// LoadFrom builds the graph from already-open datasets. Path options are
// ignored; every other option applies.
func (r *Runner) LoadFrom(ctx context.Context, registrations, contacts io.Reader, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	hooks := observability.Pipeline()

	synonyms, err := loadSynonyms(opts.SynonymsPath)
	if err != nil {
		return nil, err
	}

	result := &Result{Stats: Stats{Rejected: make(map[hpd.Reason]int)}}
	start := time.Now()

	// Stage 1: Registrations
	hooks.OnLoadStart(ctx, observability.DatasetRegistrations)
	idx, err := hpd.LoadIndex(registrations, hpd.IndexOptions{
		MaxExpirationAge: opts.MaxExpirationAge,
		Today:            opts.Today,
		Logger:           logger,
	})
	var rows int
	if idx != nil {
		rows = idx.Stats().Rows
	}
	hooks.OnLoadComplete(ctx, observability.DatasetRegistrations, rows, time.Since(start), err)
	if err != nil {
		return nil, datasetError(err, observability.DatasetRegistrations)
	}
	result.Index = idx
	result.Stats.Registrations = idx.Stats()

	logger.Info("loaded registrations",
		"rows", result.Stats.Registrations.Rows,
		"valid", idx.Len(),
		"expired", result.Stats.Registrations.Expired,
		"duration", time.Since(start))

	// Stage 2: Contacts
	contactsStart := time.Now()
	hooks.OnLoadStart(ctx, observability.DatasetContacts)
	filter := &hpd.Filter{Validity: idx, IncludeCorps: opts.IncludeCorps, Synonyms: synonyms}
	b := graph.NewBuilder()
	err = hpd.ReadContacts(contacts, func(c hpd.Contact) error {
		result.Stats.Contacts++
		if result.Stats.Contacts%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		rec, reason := filter.Evaluate(c)
		hooks.OnContact(ctx, string(reason))
		if reason != hpd.Accepted {
			result.Stats.Rejected[reason]++
			return nil
		}
		result.Stats.Accepted++
		if _, err := b.Add(rec.Name, rec.Address, graph.Ref{RegistrationID: rec.RegistrationID, ContactID: rec.ContactID}); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "contact %d", rec.ContactID)
		}
		return nil
	})
	hooks.OnLoadComplete(ctx, observability.DatasetContacts, result.Stats.Contacts, time.Since(contactsStart), err)
	if err != nil {
		return nil, datasetError(err, observability.DatasetContacts)
	}
	result.Stats.LoadTime = time.Since(start)

	// Stage 3: Partition
	buildStart := time.Now()
	result.Graph = b.Graph()
	result.Portfolios = portfolio.Partition(result.Graph)
	result.Stats.BuildTime = time.Since(contactsStart)
	hooks.OnGraphBuilt(ctx, result.Graph.NodeCount(), result.Graph.EdgeCount(), result.Portfolios.Len(), time.Since(buildStart))

	logger.Info("built graph",
		"contacts", result.Stats.Contacts,
		"accepted", result.Stats.Accepted,
		"names", b.NameCount(),
		"addresses", b.AddrCount(),
		"portfolios", result.Portfolios.Len(),
		"duration", result.Stats.BuildTime)

	return result, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// datasetError attributes err to dataset: coded errors record it, others get
// it as a prefix.
func datasetError(err error, dataset string) error {
	if errors.GetCode(err) != "" {
		return errors.InDataset(err, dataset)
	}
	return fmt.Errorf("%s: %w", dataset, err)
}

func loadSynonyms(path string) (*hpd.Synonyms, error) {
	if path == "" {
		return hpd.DefaultSynonyms(), nil
	}
	return hpd.LoadSynonyms(path)
}
