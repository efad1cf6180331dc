// Package cli implements the keyforge command-line interface.
//
// This package provides commands for building keycaps by label or spec
// file, building whole sculpted profiles, rendering previews, laying out key
// sets, and managing the artifact cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Build keys by label or from TOML spec files
//   - profile: Build, list, or interactively pick the keys of a profile
//   - preview: Render PNG or WebP previews
//   - layout: Write a 1:1 PDF placement sheet and an assembled STL
//   - cache: Clear, locate, or measure the artifact cache
//   - config: Show or create the configuration file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels through context.Context into the pipeline runner, so per-key build
// stages log under a key=<label> field and command steps log their timings.
//
// # Example
//
//	import "github.com/matzehuels/keyforge/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, stamped with
// "15:04:05.00" times.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch logs how long a command step took. Each lap logs the time since
// the previous lap; done logs the total.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
}

func newStopwatch(l *log.Logger) *stopwatch {
	now := time.Now()
	return &stopwatch{logger: l, start: now, last: now}
}

// lap logs msg at debug level with the time since the previous lap.
func (s *stopwatch) lap(msg string, keyvals ...any) {
	now := time.Now()
	s.logger.Debug(msg, append(keyvals, "took", now.Sub(s.last).Round(time.Millisecond))...)
	s.last = now
}

// done logs msg at info level with the total elapsed time, for example
// "built keys keys=26 failed=0 elapsed=1.234s".
func (s *stopwatch) done(msg string, keyvals ...any) time.Duration {
	d := time.Since(s.start).Round(time.Millisecond)
	s.logger.Info(msg, append(keyvals, "elapsed", d)...)
	return d
}

type ctxKey struct{}

// withLogger attaches l to ctx for commands and the runner.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default so callers never handle nil.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
