package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spritetower/pkg/observability"
)

// debugHooks logs every generation, cache and server event at debug level.
type debugHooks struct {
	logger *log.Logger
}

// RegisterDebugHooks routes observability events to logger. Called from
// main when --verbose is set.
func RegisterDebugHooks(logger *log.Logger) {
	h := &debugHooks{logger: logger.WithPrefix("hooks")}
	observability.SetGenerateHooks(h)
	observability.SetCacheHooks(h)
	observability.SetServerHooks(h)
}

func (h *debugHooks) OnLoadStart(_ context.Context, config string, files int) {
	h.logger.Debug("load start", "config", config, "files", files)
}

func (h *debugHooks) OnLoadComplete(_ context.Context, config string, icons, skipped int, d time.Duration, err error) {
	h.logger.Debug("load done", "config", config, "icons", icons, "skipped", skipped, "duration", d, "error", err)
}

func (h *debugHooks) OnPackStart(_ context.Context, packer string, icons int) {
	h.logger.Debug("pack start", "packer", packer, "icons", icons)
}

func (h *debugHooks) OnPackComplete(_ context.Context, packer string, w, hgt float64, d time.Duration, err error) {
	h.logger.Debug("pack done", "packer", packer, "width", w, "height", hgt, "duration", d, "error", err)
}

func (h *debugHooks) OnRenderStart(_ context.Context, artifacts []string) {
	h.logger.Debug("render start", "artifacts", artifacts)
}

func (h *debugHooks) OnRenderComplete(_ context.Context, artifacts []string, d time.Duration, err error) {
	h.logger.Debug("render done", "artifacts", len(artifacts), "duration", d, "error", err)
}

func (h *debugHooks) OnCacheHit(_ context.Context, backend string) {
	h.logger.Debug("cache hit", "backend", backend)
}

func (h *debugHooks) OnCacheMiss(_ context.Context, backend string) {
	h.logger.Debug("cache miss", "backend", backend)
}

func (h *debugHooks) OnCacheSet(_ context.Context, backend string, size int) {
	h.logger.Debug("cache set", "backend", backend, "bytes", size)
}

func (h *debugHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *debugHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}
