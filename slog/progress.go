package slog

import (
	"log/slog"

	"github.com/fwojciec/blogmirror/crawl"
)

// NewProgressLogger returns a crawl.ProgressFunc that writes pipeline
// events to logger. Every record carries the run ID.
func NewProgressLogger(logger *slog.Logger) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		l := logger.With("run", e.RunID)
		switch e.Type {
		case crawl.ProgressStageStarted:
			l.Info("stage started", "stage", e.Stage)
		case crawl.ProgressStageFinished:
			l.Info("stage finished", "stage", e.Stage)
		case crawl.ProgressListingRead:
			l.Info("listing read", "url", e.URL, "count", e.Count)
		case crawl.ProgressDetailSaved:
			l.Info("detail saved", "post", e.PostID)
		case crawl.ProgressDetailSkipped:
			l.Debug("detail skipped", "post", e.PostID)
		case crawl.ProgressRetry:
			l.Warn("retrying fetch", "stage", e.Stage, "url", e.URL, "attempt", e.Count, "err", e.Error)
		}
	}
}
