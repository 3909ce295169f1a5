package cli

import (
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hpdgraph/pkg/httputil"
)

// fetchCommand creates the fetch command.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		maxAge           time.Duration
		registrationsURL = httputil.RegistrationsURL
		contactsURL      = httputil.ContactsURL
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the HPD datasets from NYC Open Data",
		Long: `Download the HPD datasets from NYC Open Data.

The files are written to the --registrations and --contacts paths. Files
modified within --max-age are kept as they are.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd)
			if err != nil {
				return err
			}
			downloads := []httputil.DownloadOptions{
				{URL: registrationsURL, Dest: opts.RegistrationsPath, MaxAge: maxAge},
				{URL: contactsURL, Dest: opts.ContactsPath, MaxAge: maxAge},
			}
			results := make([]*httputil.DownloadResult, len(downloads))

			spinner := newSpinnerWithContext(cmd.Context(), "Downloading datasets...")
			spinner.Start()
			g, ctx := errgroup.WithContext(cmd.Context())
			for i, d := range downloads {
				g.Go(func() error {
					res, err := httputil.Download(ctx, d)
					results[i] = res
					return err
				})
			}
			err = g.Wait()
			spinner.Stop()
			if err != nil {
				return err
			}

			w := cmd.ErrOrStderr()
			for _, r := range results {
				if r.Cached {
					printInfo(w, "Kept %s", r.Path)
					printDetail(w, "modified within %s", maxAge)
					continue
				}
				printSuccess(w, "Downloaded %s", r.Path)
				printDetail(w, "%d bytes", r.Bytes)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&maxAge, "max-age", 24*time.Hour, "keep existing files younger than this (0 always downloads)")
	cmd.Flags().StringVar(&registrationsURL, "registrations-url", registrationsURL, "registrations dataset URL")
	cmd.Flags().StringVar(&contactsURL, "contacts-url", contactsURL, "contacts dataset URL")
	_ = cmd.Flags().MarkHidden("registrations-url")
	_ = cmd.Flags().MarkHidden("contacts-url")

	return cmd
}
