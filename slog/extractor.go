package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/blogmirror"
)

// Ensure LoggingExtractor implements blogmirror.Extractor.
var _ blogmirror.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   blogmirror.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next blogmirror.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractCategories delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractCategories(html, baseURL string) (categories []blogmirror.CategoryLink, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract categories",
			"url", baseURL,
			"count", len(categories),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractCategories(html, baseURL)
}

// ExtractListingPage delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractListingPage(html, baseURL string) (page *blogmirror.ListingPage, err error) {
	defer func(begin time.Time) {
		var count int
		var next string
		if page != nil {
			count, next = len(page.Items), page.NextPageURL
		}
		e.logger.Debug("extract listing page",
			"url", baseURL,
			"count", count,
			"next", next,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractListingPage(html, baseURL)
}

// ExtractDetail delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractDetail(html string) (detail *blogmirror.DetailContent, err error) {
	defer func(begin time.Time) {
		var tags, size int
		if detail != nil {
			tags, size = len(detail.Tags), len(detail.Content)
		}
		e.logger.Debug("extract detail",
			"tags", tags,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractDetail(html)
}
