// Package cli implements the simplechords command-line interface.
//
// The commands are:
//   - render: lay out chord sheets and write them as PDF
//   - check: parse chord sheets and report problems without rendering
//   - config: write or print the layout configuration
//
// Logs go to stderr, prefixed with the command path. --log-level picks the
// level; -v and -q are short for debug and warn. Timestamps are only shown
// at debug level.
package cli

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

type logFlags struct {
	level   string
	verbose bool
	quiet   bool
}

func (f logFlags) resolve() (log.Level, error) {
	switch {
	case f.verbose && f.quiet:
		return 0, errors.New("--verbose and --quiet exclude each other")
	case f.level != "":
		return log.ParseLevel(f.level)
	case f.verbose:
		return log.DebugLevel, nil
	case f.quiet:
		return log.WarnLevel, nil
	}
	return log.InfoLevel, nil
}

func newLogger(w io.Writer, level log.Level, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: level <= log.DebugLevel,
		TimeFormat:      "15:04:05.000",
	})
}

// since is the time passed since start, rounded for log output.
func since(start time.Time) time.Duration {
	return time.Since(start).Round(time.Millisecond)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
