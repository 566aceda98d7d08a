package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by logging at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Register installs h for all hook categories.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetAssetHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnValidate(_ context.Context, records, problems int) {
	h.logger.Debug("validated", "records", records, "problems", problems)
}

func (h *LogHooks) OnPaginate(_ context.Context, records, pages int) {
	h.logger.Debug("paginated", "records", records, "pages", pages)
}

func (h *LogHooks) OnComposeStart(_ context.Context, page, rows int) {
	h.logger.Debug("composing page", "page", page, "rows", rows)
}

func (h *LogHooks) OnComposeComplete(_ context.Context, page int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("compose failed", "page", page, "error", err)
		return
	}
	h.logger.Debug("composed page", "page", page, "took", d)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, page int, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "page", page, "format", format, "error", err)
		return
	}
	h.logger.Debug("rendered", "page", page, "format", format, "bytes", size, "took", d)
}

func (h *LogHooks) OnResolve(_ context.Context, kind string, cached bool, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("asset fallback", "kind", kind, "error", err)
		return
	}
	h.logger.Debug("asset resolved", "kind", kind, "cached", cached, "took", d)
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
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "error", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ AssetHooks    = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
