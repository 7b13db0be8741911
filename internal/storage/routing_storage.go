package storage

import (
	"context"
	"net/url"
	"strings"
)

// RoutingFetcher dispatches fetches to the blob fetcher for Azure blob
// URLs and to the fallback fetcher for everything else. When no blob
// fetcher is configured, all URLs go to the fallback.
type RoutingFetcher struct {
	fallback MediaFetcher
	blob     MediaFetcher
}

// NewRoutingFetcher creates a routing fetcher. blob may be nil.
func NewRoutingFetcher(fallback, blob MediaFetcher) *RoutingFetcher {
	return &RoutingFetcher{fallback: fallback, blob: blob}
}

func (r *RoutingFetcher) FetchMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	if r.blob != nil && isBlobURL(mediaURL) {
		return r.blob.FetchMedia(ctx, mediaURL)
	}
	return r.fallback.FetchMedia(ctx, mediaURL)
}

func isBlobURL(mediaURL string) bool {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(u.Hostname(), ".blob.core.windows.net")
}
