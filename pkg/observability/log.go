package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level entries.
// The CLI registers it when --verbose is set.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log through l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l}
}

// Register installs h for all hook categories.
func (h *LogHooks) Register() {
	SetCompositeHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnCompositeStart(_ context.Context, recordID string) {
	h.logger.Debug("composite started", "record", recordID)
}

func (h *LogHooks) OnCompositeComplete(_ context.Context, recordID string, bytes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("composite failed", "record", recordID, "duration", d, "err", err)
		return
	}
	h.logger.Debug("composite finished", "record", recordID, "bytes", bytes, "duration", d)
}

func (h *LogHooks) OnLogoSkipped(_ context.Context, recordID, logoRef string, err error) {
	h.logger.Warn("logo skipped", "record", recordID, "logo", logoRef, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ CompositeHooks = (*LogHooks)(nil)
	_ CacheHooks     = (*LogHooks)(nil)
	_ HTTPHooks      = (*LogHooks)(nil)
)
