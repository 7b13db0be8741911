package factory

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go-brightness-finder/internal/engine"
	"go-brightness-finder/internal/source"
)

// MediaKind identifies what kind of frame sequence a media payload
// decodes into.
type MediaKind string

const (
	// StillMedia is a single image: a one-frame sequence.
	StillMedia MediaKind = "still"
	// AnimationMedia is a multi-frame sequence (animated GIF).
	AnimationMedia MediaKind = "animation"
	// SimulatedMedia is the synthetic camera stream.
	SimulatedMedia MediaKind = "simulated"
)

// SourceFactory builds frame sources from decoded media payloads.
type SourceFactory interface {
	SourceForMedia(data []byte) (source.Sequence, MediaKind, error)
	CreateSimulated(width, height int, seed int64) engine.FrameSource
}

type sourceFactory struct{}

// NewSourceFactory creates the default source factory. It recognizes the
// formats registered with the image package (JPEG, PNG, GIF).
func NewSourceFactory() SourceFactory {
	return &sourceFactory{}
}

// SourceForMedia sniffs the payload format and builds the matching
// sequence. Animated GIFs become multi-frame sequences; everything else
// decodable becomes a one-frame still.
func (f *sourceFactory) SourceForMedia(data []byte) (source.Sequence, MediaKind, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("unrecognized media format: %w", err)
	}

	if format == "gif" {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode gif: %w", err)
		}
		if len(g.Image) > 1 {
			return source.NewGIF(g), AnimationMedia, nil
		}
		// A single-frame GIF behaves like any other still.
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	return source.NewStill(img), StillMedia, nil
}

// CreateSimulated builds the simulated camera stream.
func (f *sourceFactory) CreateSimulated(width, height int, seed int64) engine.FrameSource {
	return source.NewSimCamera(width, height, seed)
}
