// Package httputil downloads the HPD datasets over HTTP.
//
// # Download
//
// [Download] streams a URL into a local file. The file is written to a
// temporary sibling and renamed into place, so an interrupted download never
// leaves a truncated dataset behind. A file younger than
// [DownloadOptions.MaxAge] is reused without contacting the server:
//
//	res, err := httputil.Download(ctx, httputil.DownloadOptions{
//	    URL:    httputil.RegistrationsURL,
//	    Dest:   "Multiple_Dwelling_Registrations.csv",
//	    MaxAge: 24 * time.Hour,
//	})
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff when it fails with a
// [RetryableError]. Download treats network errors, 5xx responses and 429
// rate limit responses as retryable, and a numeric Retry-After header
// replaces the backoff delay.
package httputil
