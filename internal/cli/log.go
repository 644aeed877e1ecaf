// Package cli implements the transitcat command-line interface.
//
// This package provides commands for answering request documents, printing
// bus and stop statistics, finding routes, exporting the routing graph, and
// serving queries over HTTP. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - query: Answer a JSON request document
//   - text: Answer the line-oriented text format
//   - bus, stop, route: Single queries against a document's network
//   - graph: Export the routing graph as DOT or SVG
//   - serve: Serve queries over HTTP
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

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Loaded network (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to
// log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports routing events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnGraphBuilt(_ context.Context, vertices, edges int, d time.Duration) {
	h.logger.Debug("routing graph built", "vertices", vertices, "edges", edges, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnRouteQuery(_ context.Context, from, to string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("route query", "from", from, "to", to, "took", d.Round(time.Microsecond), "err", err)
		return
	}
	h.logger.Debug("route query", "from", from, "to", to, "took", d.Round(time.Microsecond))
}
