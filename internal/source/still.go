package source

import (
	"context"
	"image"
	"io"

	"go-brightness-finder/internal/engine"
)

// Still wraps a single decoded image as a one-frame sequence, so stills
// and videos share the same analysis path.
type Still struct {
	frame *engine.Frame
	done  bool
}

// NewStill creates a one-frame source from a decoded image.
func NewStill(img image.Image) *Still {
	return &Still{frame: FrameFromImage(img)}
}

func (s *Still) Next(ctx context.Context) (*engine.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.done {
		return nil, io.EOF
	}
	s.done = true
	return s.frame, nil
}

func (s *Still) FrameAt(index int) (*engine.Frame, bool) {
	if index != 0 {
		return nil, false
	}
	return s.frame, true
}

func (s *Still) Len() int { return 1 }
