package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MediaFetcher retrieves a raw media payload (image or animation bytes)
// for the decode layer. Fetchers never parse the payload themselves.
type MediaFetcher interface {
	FetchMedia(ctx context.Context, mediaURL string) ([]byte, error)
}

// HTTPMediaFetcher implements MediaFetcher over HTTP with bounded retries.
type HTTPMediaFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPMediaFetcher creates an HTTP media fetcher. maxBytes caps the
// payload size; values <= 0 default to 64MB.
func NewHTTPMediaFetcher(maxBytes int64) *HTTPMediaFetcher {
	if maxBytes <= 0 {
		maxBytes = 64 * 1024 * 1024
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &HTTPMediaFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		maxBytes: maxBytes,
	}
}

// FetchMedia downloads the payload at mediaURL. Transient failures and
// 5xx responses are retried up to 3 attempts with linear backoff; 4xx
// responses fail immediately.
func (h *HTTPMediaFetcher) FetchMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		data, retryable, err := h.fetchOnce(ctx, mediaURL)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retryable {
			return nil, fmt.Errorf("failed to fetch media: %w", lastErr)
		}
	}
	return nil, fmt.Errorf("failed to fetch media after 3 attempts: %w", lastErr)
}

func (h *HTTPMediaFetcher) fetchOnce(ctx context.Context, mediaURL string) (data []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/gif, */*")
	req.Header.Set("User-Agent", "Go-Brightness-Finder/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Read below.
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, false, fmt.Errorf("client error: status code %d", resp.StatusCode)
	default:
		return nil, true, fmt.Errorf("server error: status code %d", resp.StatusCode)
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, true, fmt.Errorf("failed to read media body: %w", err)
	}
	if int64(len(data)) > h.maxBytes {
		return nil, false, fmt.Errorf("media larger than %d byte limit", h.maxBytes)
	}
	return data, false, nil
}
