// Package cli implements the supernova command-line interface.
//
// The CLI renders personality profiles from flags or measurement files,
// renders whole CSV tables in batch, and manages the artifact cache. It is
// built on cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - render: draw one profile from flags or a --scores file
//   - batch: draw one file per identifier of a CSV table
//   - list: show the available center algorithms, formats and colors
//   - cache: clear or locate the artifact cache
//   - completion: shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports the effective colors, configuration, measurements and per-trait
// geometry of every render.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
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

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 12 profiles (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Logging Hooks
// =============================================================================

// logHooks forwards pipeline and cache events to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)

func (h *logHooks) OnBuildStart(_ context.Context, id string) {
	h.logger.Debug("build started", "id", id)
}

func (h *logHooks) OnBuildComplete(_ context.Context, id string, triangles int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("build failed", "id", id, "err", errors.UserMessage(err))
		return
	}
	h.logger.Debug("build complete", "id", id, "triangles", triangles, "duration", d)
}

func (h *logHooks) OnEncodeStart(_ context.Context, id, format string) {
	h.logger.Debug("encode started", "id", id, "format", format)
}

func (h *logHooks) OnEncodeComplete(_ context.Context, id, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("encode failed", "id", id, "format", format, "err", errors.UserMessage(err))
		return
	}
	h.logger.Debug("encode complete", "id", id, "format", format, "bytes", size, "duration", d)
}

func (h *logHooks) OnGroupComplete(_ context.Context, id string, err error) {
	h.logger.Debug("group complete", "id", id, "ok", err == nil)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
