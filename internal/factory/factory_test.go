package factory

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("Failed to encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func encodeGIF(t *testing.T, frames int) []byte {
	t.Helper()
	pal := color.Palette{
		color.RGBA{A: 255},
		color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}

	anim := &gif.GIF{}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, 4, 4), pal)
		frame.SetColorIndex(i%4, 0, 1)
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 10)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		t.Fatalf("Failed to encode gif: %v", err)
	}
	return buf.Bytes()
}

func TestSourceForMedia_PNG(t *testing.T) {
	seq, kind, err := NewSourceFactory().SourceForMedia(encodePNG(t))
	if err != nil {
		t.Fatalf("SourceForMedia failed: %v", err)
	}
	if kind != StillMedia {
		t.Errorf("Expected kind %q, got %q", StillMedia, kind)
	}
	if seq.Len() != 1 {
		t.Errorf("Expected 1 frame, got %d", seq.Len())
	}

	frame, err := seq.Next(context.Background())
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	r, g, b := frame.RGBAt(2, 1)
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("Expected white pixel at (2,1), got (%d,%d,%d)", r, g, b)
	}
}

func TestSourceForMedia_JPEG(t *testing.T) {
	seq, kind, err := NewSourceFactory().SourceForMedia(encodeJPEG(t))
	if err != nil {
		t.Fatalf("SourceForMedia failed: %v", err)
	}
	if kind != StillMedia {
		t.Errorf("Expected kind %q, got %q", StillMedia, kind)
	}
	if seq.Len() != 1 {
		t.Errorf("Expected 1 frame, got %d", seq.Len())
	}
}

func TestSourceForMedia_AnimatedGIF(t *testing.T) {
	seq, kind, err := NewSourceFactory().SourceForMedia(encodeGIF(t, 3))
	if err != nil {
		t.Fatalf("SourceForMedia failed: %v", err)
	}
	if kind != AnimationMedia {
		t.Errorf("Expected kind %q, got %q", AnimationMedia, kind)
	}
	if seq.Len() != 3 {
		t.Errorf("Expected 3 frames, got %d", seq.Len())
	}
}

func TestSourceForMedia_SingleFrameGIF(t *testing.T) {
	_, kind, err := NewSourceFactory().SourceForMedia(encodeGIF(t, 1))
	if err != nil {
		t.Fatalf("SourceForMedia failed: %v", err)
	}
	if kind != StillMedia {
		t.Errorf("Expected a single-frame gif to be a still, got %q", kind)
	}
}

func TestSourceForMedia_Unrecognized(t *testing.T) {
	if _, _, err := NewSourceFactory().SourceForMedia([]byte("definitely not an image")); err == nil {
		t.Error("Expected an error for a non-image payload")
	}
}

func TestCreateSimulated(t *testing.T) {
	camera := NewSourceFactory().CreateSimulated(32, 24, 42)

	frame, err := camera.Next(context.Background())
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if frame.Width != 32 || frame.Height != 24 {
		t.Errorf("Expected 32x24 frame, got %dx%d", frame.Width, frame.Height)
	}
}
