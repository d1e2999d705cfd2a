// Package cli implements the slidefit command-line interface.
//
// # Commands
//
//   - fit: fit a deck for the screen viewport and write snapshots
//   - print: fit a deck for the printed page
//   - watch: refit whenever the deck or its images change
//   - serve: run the HTTP API
//   - cache: inspect and clear the local cache
//   - config: show the effective settings
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// prints one line per fitted slide. The logger is held by [CLI] and attached
// to the command context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes to w with short wall-clock timestamps like 14:32:01.45.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})
}

// progress logs how long an operation took, e.g. "Fitted 12 slides (84ms)".
type progress struct {
	logger  *log.Logger
	started time.Time
}

func newProgress(l *log.Logger) progress {
	return progress{logger: l, started: time.Now()}
}

func (p progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.started).Round(time.Millisecond))
}

type loggerKey struct{}

// withLogger attaches l to ctx for subcommands.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext falls back to log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	l, ok := ctx.Value(loggerKey{}).(*log.Logger)
	if !ok {
		return log.Default()
	}
	return l
}
