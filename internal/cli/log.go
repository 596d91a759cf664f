// Package cli implements the stackforge command-line interface.
//
// # Commands
//
// The main commands are:
//   - compose: Compose a Maven or Gradle descriptor from selected features
//   - features: List the features of a catalog and what each contributes
//   - serve: Run the HTTP API
//   - cache: Manage the version lookup cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context; registry lookups log at debug level.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackforge/pkg/compose"
)

// newLogger returns the CLI logger. Timestamps use "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one composition.
type progress struct {
	logger      *log.Logger
	buildSystem string
	start       time.Time
}

func newProgress(l *log.Logger, buildSystem string) *progress {
	return &progress{logger: l, buildSystem: buildSystem, start: time.Now()}
}

// done logs what the descriptor contains and how long composing it took.
func (p *progress) done(d *compose.Descriptor) {
	p.logger.Info(fmt.Sprintf("Composed %s descriptor", p.buildSystem),
		"dependencies", len(d.Dependencies),
		"plugins", len(d.Plugins)+len(d.BuildPlugins)+len(d.ReportingPlugins),
		"templates", len(d.Templates),
		"elapsed", time.Since(p.start).Round(time.Millisecond),
	)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger, or log.Default() outside a
// command invocation.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
