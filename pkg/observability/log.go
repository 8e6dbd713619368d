package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level log lines.
// Failures are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through l.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

func (h *LogHooks) OnMutation(_ context.Context, kind string, nodeCount int) {
	h.logger.Debug("tree changed", "kind", kind, "nodes", nodeCount)
}

func (h *LogHooks) OnLoadFailed(_ context.Context, code string) {
	h.logger.Warn("load rejected", "code", code)
}

func (h *LogHooks) OnRenderStart(_ context.Context, mode, format string, nodeCount int) {
	h.logger.Debug("render start", "mode", mode, "format", format, "nodes", nodeCount)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, mode, format string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "mode", mode, "format", format, "err", err)
		return
	}
	h.logger.Debug("render done", "mode", mode, "format", format, "took", d.Round(time.Millisecond))
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

var (
	_ EditorHooks = (*LogHooks)(nil)
	_ RenderHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
)
