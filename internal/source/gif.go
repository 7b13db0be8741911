package source

import (
	"context"
	"image"
	"image/draw"
	"image/gif"
	"io"

	"go-brightness-finder/internal/engine"
)

// GIF yields the frames of an animated GIF in playback order. GIF frames
// may cover only a sub-rectangle of the canvas, so each frame is
// composited over the running canvas before conversion.
type GIF struct {
	frames []*engine.Frame
	pos    int
}

// NewGIF decodes all frames of g into flat RGB frames.
func NewGIF(g *gif.GIF) *GIF {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() && len(g.Image) > 0 {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	frames := make([]*engine.Frame, 0, len(g.Image))
	for _, paletted := range g.Image {
		draw.Draw(canvas, paletted.Bounds(), paletted, paletted.Bounds().Min, draw.Over)
		frames = append(frames, FrameFromImage(canvas))
	}
	return &GIF{frames: frames}
}

func (g *GIF) Next(ctx context.Context) (*engine.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.pos >= len(g.frames) {
		return nil, io.EOF
	}
	f := g.frames[g.pos]
	g.pos++
	return f, nil
}

func (g *GIF) FrameAt(index int) (*engine.Frame, bool) {
	if index < 0 || index >= len(g.frames) {
		return nil, false
	}
	return g.frames[index], true
}

func (g *GIF) Len() int { return len(g.frames) }
