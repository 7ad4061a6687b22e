package monitor

import (
	"context"

	"github.com/aleister1102/seatwatch/internal/common"
	"github.com/aleister1102/seatwatch/internal/extractor"
	"github.com/aleister1102/seatwatch/internal/models"
	"github.com/rs/zerolog"
)

// Aggregator fetches every portal page in order and merges the extracted courses
type Aggregator struct {
	fetcher   Fetcher
	extractor *extractor.CourseExtractor
	logger    zerolog.Logger
}

// NewAggregator creates a new Aggregator.
func NewAggregator(fetcher Fetcher, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		fetcher:   fetcher,
		extractor: extractor.NewCourseExtractor(logger),
		logger:    logger.With().Str("component", "Aggregator").Logger(),
	}
}

// Aggregate fetches urls sequentially. A course seen on a later page
// overrides the same code from an earlier one. Any fetch failure aborts
// with a FetchError; partial results are never returned.
func (a *Aggregator) Aggregate(ctx context.Context, urls []string) (*models.Snapshot, error) {
	if len(urls) == 0 {
		return nil, common.NewValidationError("portal_config.urls", urls, "at least one portal URL is required")
	}

	merged := models.NewSnapshot()
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return nil, common.NewFetchError(url, err)
		}

		content, err := a.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, common.NewFetchError(url, err)
		}

		page := a.extractor.Extract(content)
		a.logger.Info().Str("url", url).Int("courses", page.Len()).Msg("Page processed")
		merged.Merge(page)
	}

	return merged, nil
}
