// Package cli implements the hpdgraph command-line interface.
//
// Every command loads the registrations and contacts datasets through
// [pipeline.Runner], then queries the resulting portfolios. Dataset paths and
// filter settings come from persistent flags, an optional TOML config file,
// and the pipeline defaults, in that order of precedence.
//
// # Commands
//
//   - info: graph totals, and a portfolio summary when given a name
//   - ranking: portfolios by building count
//   - longpaths: long chains of names through shared business addresses
//   - dot, json: export one portfolio
//   - website: export every ranked portfolio as a static site
//   - serve: read-only HTTP API with Prometheus metrics
//   - browse: interactive portfolio picker
//   - fetch: download the datasets from NYC Open Data
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a leveled logger writing to w with short wall-clock
// timestamps ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stage times one step of a command. done logs the step's name at info level
// with the caller's fields followed by the elapsed duration.
type stage struct {
	logger *log.Logger
	name   string
	start  time.Time
}

func startStage(l *log.Logger, name string) *stage {
	l.Debug("starting", "stage", name)
	return &stage{logger: l, name: name, start: time.Now()}
}

func (s *stage) done(keyvals ...any) {
	keyvals = append(keyvals, "duration", time.Since(s.start).Round(time.Millisecond))
	s.logger.Info(s.name, keyvals...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger stored by withLogger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
