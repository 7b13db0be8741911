package repository

import (
	"context"
	"fmt"

	"go-brightness-finder/internal/storage"
	"go-brightness-finder/pkg/validation"
)

// MediaRepository defines data access for media payloads to analyze.
type MediaRepository interface {
	// FetchMedia retrieves the raw bytes of the media at the given URL.
	FetchMedia(ctx context.Context, mediaURL string) ([]byte, error)

	// ValidateMediaURL checks whether the URL is acceptable before any
	// network traffic happens.
	ValidateMediaURL(mediaURL string) error
}

// FetcherRepository implements MediaRepository on top of a MediaFetcher
// (HTTP or blob storage).
type FetcherRepository struct {
	fetcher   storage.MediaFetcher
	validator *validation.URLValidator
}

// NewFetcherRepository creates a repository backed by the given fetcher.
func NewFetcherRepository(fetcher storage.MediaFetcher) *FetcherRepository {
	return &FetcherRepository{
		fetcher:   fetcher,
		validator: validation.NewURLValidator(),
	}
}

func (r *FetcherRepository) FetchMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	data, err := r.fetcher.FetchMedia(ctx, mediaURL)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyMedia, mediaURL)
	}
	return data, nil
}

func (r *FetcherRepository) ValidateMediaURL(mediaURL string) error {
	if err := r.validator.ValidateMediaURL(mediaURL); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMediaURL, err)
	}
	return nil
}
