// Package source provides the frame producers consumed by the engine:
// still images, animated GIFs, and a simulated camera. Sources own all
// decoding; the engine only ever sees flat RGB frames.
package source

import (
	"image"

	"go-brightness-finder/internal/engine"
)

// Sequence is a FrameSource with random access to already-decoded frames.
// The service uses it to revisit the brightest frame for detailed
// analysis without the engine retaining buffers mid-sequence.
type Sequence interface {
	engine.FrameSource

	// FrameAt returns the frame at the given stream index, or false when
	// the index is out of range.
	FrameAt(index int) (*engine.Frame, bool)

	// Len is the total number of frames in the sequence.
	Len() int
}

// FrameFromImage converts a decoded image into a flat RGB frame.
func FrameFromImage(img image.Image) *engine.Frame {
	bounds := img.Bounds()
	frame := engine.NewFrame(bounds.Dx(), bounds.Dy())

	pos := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			frame.Pix[pos] = uint8(r >> 8)
			frame.Pix[pos+1] = uint8(g >> 8)
			frame.Pix[pos+2] = uint8(b >> 8)
			pos += 3
		}
	}
	return frame
}
