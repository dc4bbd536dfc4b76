// Package cli implements the bigbang command-line interface.
//
// The commands cover the whole pipeline, from word-usage data to a rendered
// bubble chart, plus the HTTP service and a live terminal view. The CLI is
// built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - layout: settle a layout and write <data>.layout.json
//   - visualize: render a layout file to SVG, PNG, PDF or DOT
//   - render: layout and visualize in one step, optionally on every file change
//   - animate: watch the simulation settle in the terminal
//   - stats: per-character word counts
//   - serve: the HTTP API
//   - cache, config: manage local state
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes pipeline, cache and server hooks to the log. Loggers are passed
// through context.Context.
//
// # Configuration
//
// Defaults come from $XDG_CONFIG_HOME/bigbang/config.toml (or --config);
// flags given on the command line override them.
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
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Loaded 412 records (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
