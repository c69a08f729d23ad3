package metadata

/*
Metadata Collected
- Fetch timestamps
- HTTP status codes
- Content hashes
- Crawl depth

Logging Goals
- Debuggable crawl behavior
- Post-run auditability
- Failure diagnostics

Structured logging is preferred.

Allowed:
- Primitive values
- Timestamps
- URLs (as values, not objects with behavior)
- Hashes
- Status codes
- Durations
- Identifiers (page ID, crawl ID)
*/

import (
	"log/slog"
	"time"
)

// MetadataSink is the single channel through which every pipeline
// component reports observability data. It is observational only: no
// package may use a MetadataSink call to decide whether to retry,
// continue, or abort.
type MetadataSink interface {
	RecordFetch(fetchURL string, httpStatus int, duration time.Duration, contentType string, retryCount int, crawlDepth int)
	RecordAssetFetch(fetchURL string, httpStatus int, duration time.Duration, retryCount int)
	RecordError(observedAt time.Time, packageName string, action string, cause ErrorCause, errorString string, attrs []Attribute)
	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
	RecordFinalCrawlStats(totalPages int, totalErrors int, totalAssets int, duration time.Duration)
}

// NoopSink is a MetadataSink that discards every event.
type NoopSink struct{}

func (NoopSink) RecordFetch(string, int, time.Duration, string, int, int)               {}
func (NoopSink) RecordAssetFetch(string, int, time.Duration, int)                       {}
func (NoopSink) RecordError(time.Time, string, string, ErrorCause, string, []Attribute) {}
func (NoopSink) RecordArtifact(ArtifactKind, string, []Attribute)                       {}
func (NoopSink) RecordFinalCrawlStats(int, int, int, time.Duration)                     {}

// Recorder is the default MetadataSink, logging every event as a
// structured slog record. It keeps no state beyond the logger itself;
// aggregate counting is the caller's responsibility (see crawlStats).
type Recorder struct {
	logger *slog.Logger
}

// NewRecorder returns a Recorder that writes structured log records to logger.
// A nil logger falls back to slog.Default().
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{logger: logger}
}

func (r *Recorder) RecordFetch(fetchURL string, httpStatus int, duration time.Duration, contentType string, retryCount int, crawlDepth int) {
	r.logger.Info("fetch",
		slog.String("url", fetchURL),
		slog.Int("http_status", httpStatus),
		slog.Duration("duration", duration),
		slog.String("content_type", contentType),
		slog.Int("retry_count", retryCount),
		slog.Int("crawl_depth", crawlDepth),
	)
}

func (r *Recorder) RecordAssetFetch(fetchURL string, httpStatus int, duration time.Duration, retryCount int) {
	r.logger.Info("asset_fetch",
		slog.String("url", fetchURL),
		slog.Int("http_status", httpStatus),
		slog.Duration("duration", duration),
		slog.Int("retry_count", retryCount),
	)
}

func (r *Recorder) RecordError(observedAt time.Time, packageName string, action string, cause ErrorCause, errorString string, attrs []Attribute) {
	args := []any{
		slog.Time("observed_at", observedAt),
		slog.String("package", packageName),
		slog.String("action", action),
		slog.String("cause", cause.String()),
		slog.String("error", errorString),
	}
	for _, attr := range attrs {
		args = append(args, slog.String(string(attr.Key), attr.Value))
	}
	r.logger.Error("crawl_error", args...)
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	args := []any{
		slog.String("kind", kind.String()),
		slog.String("path", path),
	}
	for _, attr := range attrs {
		args = append(args, slog.String(string(attr.Key), attr.Value))
	}
	r.logger.Info("artifact", args...)
}

func (r *Recorder) RecordFinalCrawlStats(totalPages int, totalErrors int, totalAssets int, duration time.Duration) {
	r.logger.Info("crawl_complete",
		slog.Int("total_pages", totalPages),
		slog.Int("total_errors", totalErrors),
		slog.Int("total_assets", totalAssets),
		slog.Duration("duration", duration),
	)
}

var _ MetadataSink = (*Recorder)(nil)
