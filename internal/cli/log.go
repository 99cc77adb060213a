// Package cli implements the menulink command-line interface.
//
// The CLI encodes table deep links, exports them as branded QR images,
// and serves them over HTTP or an interactive terminal UI. It is built on
// cobra with charmbracelet/log for logging and lipgloss for output styling.
//
// # Commands
//
//   - link: Encode one deep link and optionally download, copy or open it
//   - batch: Generate codes for a range of tables and every category or item
//   - tui: Manage a session of codes interactively
//   - serve: Expose the code registry over HTTP
//   - cache: Manage the fetch cache
//   - config: Write or show the configuration file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context so worker goroutines can reach it.
package cli

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger that writes to w at level, stamped "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tallies a batch of exports. record may be called from several
// goroutines; finish logs the tally with the elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
	total  int
	ok     atomic.Int32
	failed atomic.Int32
}

func newProgress(l *log.Logger, total int) *progress {
	return &progress{logger: l, start: time.Now(), total: total}
}

// record counts one finished export.
func (p *progress) record(title string, err error) {
	if err != nil {
		p.failed.Add(1)
		p.logger.Debug("export failed", "title", title, "err", err)
		return
	}
	n := p.ok.Add(1)
	p.logger.Debug("exported", "title", title, "done", n, "total", p.total)
}

// Failed reports how many exports failed so far.
func (p *progress) Failed() int { return int(p.failed.Load()) }

// finish logs "Exported n of total codes (elapsed)".
func (p *progress) finish() {
	p.logger.Infof("Exported %d of %d codes (%s)", p.ok.Load(), p.total, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey struct{}

// withLogger attaches l to ctx for command handlers and their workers.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or log.Default.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
