package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// layoutLogHooks surfaces persistence events on the CLI logger. Failures the
// chain swallows are shown as warnings so the user knows a change did not
// reach the layout store.
type layoutLogHooks struct {
	logger *log.Logger
}

func (h *layoutLogHooks) OnResolve(ctx context.Context, breakpoint, source string, duration time.Duration) {
	h.logger.Debug("layout resolved", "breakpoint", breakpoint, "source", source, "duration", duration.Round(time.Millisecond))
}

func (h *layoutLogHooks) OnSourceError(ctx context.Context, breakpoint, source string, err error) {
	h.logger.Warn("falling back from layout source", "breakpoint", breakpoint, "source", source, "error", err)
}

func (h *layoutLogHooks) OnLocalWrite(ctx context.Context, breakpoint string, records int, err error) {
	if err != nil {
		return // the chain already warns
	}
	h.logger.Debug("layout cached", "breakpoint", breakpoint, "widgets", records)
}

func (h *layoutLogHooks) OnRemoteWrite(ctx context.Context, breakpoint string, records int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout not saved to store", "breakpoint", breakpoint, "error", err)
		return
	}
	h.logger.Debug("layout saved to store", "breakpoint", breakpoint, "widgets", records, "duration", duration.Round(time.Millisecond))
}

// cacheLogHooks traces local cache traffic at debug level.
type cacheLogHooks struct {
	logger *log.Logger
}

func (h *cacheLogHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *cacheLogHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *cacheLogHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// httpLogHooks traces layout store requests at debug level.
type httpLogHooks struct {
	logger *log.Logger
}

func (h *httpLogHooks) OnRequest(ctx context.Context, method, host, path string) {
	h.logger.Debug("store request", "method", method, "host", host, "path", path)
}

func (h *httpLogHooks) OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration) {
	h.logger.Debug("store response", "method", method, "path", path, "status", statusCode, "duration", duration.Round(time.Millisecond))
}

func (h *httpLogHooks) OnError(ctx context.Context, method, host, path string, err error) {
	h.logger.Debug("store request failed", "method", method, "host", host, "path", path, "error", err)
}
