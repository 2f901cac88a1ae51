package digest

import (
	"context"
	"errors"
	"time"

	"github.com/mstrand/econcal/internal/extract"
	"github.com/mstrand/econcal/internal/logger"
)

var errNoEvents = errors.New("no events extracted")

// Fetcher supplies the raw calendar page. The concrete implementation
// lives in the fetch package; the report pipeline itself performs no
// network I/O.
type Fetcher interface {
	Fetch(ctx context.Context) (html, sourceURL string, err error)
}

// Report runs the full pipeline: fetch, extract, summarize. Failures come
// back as the standard error blocks, never as an error value, so callers
// always have something to post.
func Report(ctx context.Context, fetcher Fetcher, ref time.Time, opts Options) string {
	summary, _ := TryReport(ctx, fetcher, ref, opts)
	return summary
}

// TryReport is Report with the underlying failure exposed. The summary is
// usable either way; the error lets callers that post on a schedule skip
// a failed week and retry later.
func TryReport(ctx context.Context, fetcher Fetcher, ref time.Time, opts Options) (string, error) {
	html, sourceURL, err := fetcher.Fetch(ctx)
	if err != nil {
		logger.Warn("calendar fetch failed", logger.Fields{"error": err.Error()})
		return FetchError(err), err
	}

	events, err := extract.Events(html, ref)
	if err != nil {
		logger.Warn("calendar page did not parse", logger.Fields{"source": sourceURL, "error": err.Error()})
		return NoEventsError(), err
	}
	if len(events) == 0 {
		logger.Warn("no events extracted; layout may have changed", logger.Fields{"source": sourceURL})
		return NoEventsError(), errNoEvents
	}

	logger.Info("extracted calendar events", logger.Fields{"count": len(events), "source": sourceURL})
	return Summarize(events, sourceURL, ref, opts), nil
}
