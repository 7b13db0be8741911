package engine

import (
	"fmt"

	apperrors "go-brightness-finder/internal/errors"
)

// Frame is a rectangular buffer of RGB pixels in row-major order, three
// bytes per pixel, each channel in [0, 255].
//
// Frames are read-only inputs to the engine. Ownership stays with the
// capture or decode layer for the duration of an analysis call; the engine
// never retains a frame buffer past the call it was handed to.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFrame allocates a zeroed (all-black) frame.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// RGBAt returns the channel values of the pixel at (x, y). Coordinates
// outside the frame are a contract violation by the caller.
func (f *Frame) RGBAt(x, y int) (r, g, b uint8) {
	pos := (y*f.Width + x) * 3
	return f.Pix[pos], f.Pix[pos+1], f.Pix[pos+2]
}

// SetRGB writes the pixel at (x, y). Used by frame producers, never by the
// engine itself.
func (f *Frame) SetRGB(x, y int, r, g, b uint8) {
	pos := (y*f.Width + x) * 3
	f.Pix[pos] = r
	f.Pix[pos+1] = g
	f.Pix[pos+2] = b
}

// validate checks that the frame has at least one pixel and a buffer large
// enough to hold its dimensions.
func (f *Frame) validate() error {
	if f == nil || f.Width <= 0 || f.Height <= 0 {
		return apperrors.ErrInvalidFrame
	}
	if need := f.Width * f.Height * 3; len(f.Pix) < need {
		return fmt.Errorf("frame buffer too short: have %d bytes, need %d: %w",
			len(f.Pix), need, apperrors.ErrInvalidFrame)
	}
	return nil
}
