package repository

import "errors"

var (
	// ErrInvalidMediaURL indicates a media URL that failed validation.
	ErrInvalidMediaURL = errors.New("invalid media URL")

	// ErrMediaNotFound indicates the media could not be located.
	ErrMediaNotFound = errors.New("media not found")

	// ErrEmptyMedia indicates a zero-length media payload.
	ErrEmptyMedia = errors.New("empty media payload")
)
