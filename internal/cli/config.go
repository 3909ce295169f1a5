package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hpdgraph/pkg/cache"
	hpderrors "github.com/matzehuels/hpdgraph/pkg/errors"
	"github.com/matzehuels/hpdgraph/pkg/pipeline"
)

// =============================================================================
// Paths
// =============================================================================

// configFile returns the default config file path using the XDG standard
// (~/.config/hpdgraph/config.toml).
func configFile() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheDir returns the render cache directory using the XDG standard
// (~/.cache/hpdgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// newCache opens the render cache, falling back to no caching when the
// cache directory is unavailable.
func newCache(noCache bool, logger *log.Logger) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, fmt.Errorf("open render cache: %w", err)
	}
	logger.Debug("render cache", "dir", fc.Dir())
	return fc, nil
}

// =============================================================================
// Options Resolution
// =============================================================================

// options resolves the pipeline options for cmd. Flags set on the command
// line win over the config file, which wins over the pipeline defaults.
// The default config file is optional; one named with --config is not.
func (c *CLI) options(cmd *cobra.Command) (pipeline.Options, error) {
	var opts pipeline.Options

	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		if p, err := configFile(); err == nil {
			path = p
		}
	}
	if path != "" {
		_, err := toml.DecodeFile(path, &opts)
		switch {
		case err == nil:
			c.Logger.Debug("loaded config", "path", path)
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		case errors.Is(err, fs.ErrNotExist):
			return opts, hpderrors.Wrap(hpderrors.ErrCodeFileNotFound, err, "config %s", path)
		default:
			return opts, hpderrors.Wrap(hpderrors.ErrCodeInvalidInput, err, "config %s", path)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("registrations") {
		opts.RegistrationsPath = c.flags.RegistrationsPath
	}
	if flags.Changed("contacts") {
		opts.ContactsPath = c.flags.ContactsPath
	}
	if flags.Changed("max-expiration-age") {
		opts.MaxExpirationAge = c.flags.MaxExpirationAge
	}
	if flags.Changed("include-corps") {
		opts.IncludeCorps = c.flags.IncludeCorps
	}
	if flags.Changed("synonyms") {
		opts.SynonymsPath = c.flags.SynonymsPath
	}

	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// load reads both datasets and builds the portfolio graph.
func (c *CLI) load(cmd *cobra.Command) (*pipeline.Result, error) {
	opts, err := c.options(cmd)
	if err != nil {
		return nil, err
	}
	return c.loadWith(cmd.Context(), opts)
}

func (c *CLI) loadWith(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error) {
	st := startStage(c.Logger, "datasets loaded")
	spinner := newSpinnerWithContext(ctx, "Loading HPD datasets...")
	spinner.Start()

	res, err := pipeline.NewRunner(c.Logger).Load(ctx, opts)
	spinner.Stop()
	if err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}
	st.done("contacts", res.Stats.Contacts, "portfolios", res.Portfolios.Len())
	return res, nil
}
