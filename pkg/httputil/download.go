package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/hpdgraph/pkg/buildinfo"
)

// NYC Open Data CSV exports of the two HPD datasets.
const (
	RegistrationsURL = "https://data.cityofnewyork.us/api/views/tesw-yqqr/rows.csv?accessType=DOWNLOAD"
	ContactsURL      = "https://data.cityofnewyork.us/api/views/feu5-w2e2/rows.csv?accessType=DOWNLOAD"
)

const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
)

// DownloadOptions configures [Download].
type DownloadOptions struct {
	URL  string
	Dest string

	// MaxAge reuses an existing Dest modified within this window.
	// Zero always downloads.
	MaxAge time.Duration

	// Client defaults to http.DefaultClient.
	Client *http.Client

	Attempts int
	Delay    time.Duration
}

// DownloadResult reports what [Download] did.
type DownloadResult struct {
	Path   string
	Bytes  int64
	Cached bool
}

// Download fetches opts.URL into opts.Dest.
func Download(ctx context.Context, opts DownloadOptions) (*DownloadResult, error) {
	if opts.URL == "" || opts.Dest == "" {
		return nil, fmt.Errorf("download: url and destination are required")
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultAttempts
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}

	if info, err := os.Stat(opts.Dest); err == nil && opts.MaxAge > 0 && time.Since(info.ModTime()) <= opts.MaxAge {
		return &DownloadResult{Path: opts.Dest, Bytes: info.Size(), Cached: true}, nil
	}

	if dir := filepath.Dir(opts.Dest); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	var n int64
	err := Retry(ctx, opts.Attempts, opts.Delay, func() error {
		var err error
		n, err = fetch(ctx, opts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", opts.URL, err)
	}
	return &DownloadResult{Path: opts.Dest, Bytes: n}, nil
}

func fetch(ctx context.Context, opts DownloadOptions) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := opts.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %s", resp.Status)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return 0, &RetryableError{Err: err, After: retryAfter(resp.Header)}
		}
		return 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(opts.Dest), "."+filepath.Base(opts.Dest)+".*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return 0, &RetryableError{Err: err}
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	return n, os.Rename(tmp.Name(), opts.Dest)
}
