package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/loic-sharma/NuGet.Dependents/pkg/observability"
)

// newLogger creates a logger writing to w at level, with timestamps
// formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// elapsed returns the time since start, rounded to the millisecond.
func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

// done logs msg along with the elapsed time, e.g. "Scanned NuGet/NuGet.Client (1.234s)".
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "elapsed", p.elapsed())...)
}

// logHooks forwards observability events to the debug log.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.ScanHooks  = (*logHooks)(nil)
	_ observability.HTTPHooks  = (*logHooks)(nil)
	_ observability.CacheHooks = (*logHooks)(nil)
)

func (h *logHooks) OnListStart(_ context.Context, cloneURL, branch string) {
	h.logger.Debug("listing", "url", cloneURL, "branch", branch)
}

func (h *logHooks) OnListComplete(_ context.Context, cloneURL string, fileCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("listing failed", "url", cloneURL, "err", err)
		return
	}
	h.logger.Debug("listed", "url", cloneURL, "files", fileCount, "elapsed", d.Round(time.Millisecond))
}

func (h *logHooks) OnFileStart(context.Context, string) {}

func (h *logHooks) OnFileComplete(_ context.Context, path string, refCount int, d time.Duration, err error) {
	if err != nil {
		return
	}
	h.logger.Debug("parsed", "path", path, "refs", refCount, "elapsed", d.Round(time.Millisecond))
}

func (h *logHooks) OnScanComplete(_ context.Context, repo string, refCount, failureCount int, d time.Duration) {
	h.logger.Debug("scan complete", "repo", repo, "refs", refCount, "failures", failureCount, "elapsed", d.Round(time.Millisecond))
}

func (h *logHooks) OnRequest(context.Context, string, string, string) {}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	if status >= 300 {
		h.logger.Debug("http", "method", method, "host", host, "path", path, "status", status, "elapsed", d.Round(time.Millisecond))
	}
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(context.Context, string) {}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
