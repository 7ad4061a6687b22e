package monitor

import (
	"context"

	"github.com/aleister1102/seatwatch/internal/httpclient"
	"github.com/rs/zerolog"
)

// Fetcher retrieves the raw markup of one page. Errors must distinguish
// HTTP status failures from transport failures.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, url string) (string, error)

// Fetch calls f
func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// PageFetcher fetches pages through the shared HTTP client
type PageFetcher struct {
	client *httpclient.HTTPClient
	logger zerolog.Logger
}

// NewPageFetcher creates a new PageFetcher.
func NewPageFetcher(client *httpclient.HTTPClient, logger zerolog.Logger) *PageFetcher {
	return &PageFetcher{
		client: client,
		logger: logger.With().Str("component", "PageFetcher").Logger(),
	}
}

// Fetch performs a GET and returns the page decoded to UTF-8
func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	content, err := f.client.FetchPage(ctx, url)
	if err != nil {
		f.logger.Error().Err(err).Str("url", url).Msg("Failed to fetch page")
		return "", err
	}
	f.logger.Debug().Str("url", url).Int("bytes", len(content)).Msg("Fetched page")
	return content, nil
}
