package engine

import (
	"context"
	"errors"
	"io"
	"testing"

	apperrors "go-brightness-finder/internal/errors"
)

// sliceSource yields a fixed set of frames then io.EOF.
type sliceSource struct {
	frames []*Frame
	pos    int
}

func (s *sliceSource) Next(ctx context.Context) (*Frame, error) {
	if s.pos >= len(s.frames) {
		return nil, io.EOF
	}
	f := s.frames[s.pos]
	s.pos++
	return f, nil
}

// endlessSource yields uniform frames forever.
type endlessSource struct {
	value uint8
}

func (s *endlessSource) Next(ctx context.Context) (*Frame, error) {
	return newUniformFrame(4, 4, s.value, s.value, s.value), nil
}

func TestAnalyzeSequence_FrameOrder(t *testing.T) {
	src := &sliceSource{frames: []*Frame{
		newUniformFrame(4, 4, 10, 10, 10),
		newUniformFrame(4, 4, 90, 90, 90),
		newUniformFrame(4, 4, 40, 40, 40),
	}}

	report, err := NewSession(NewAnalyzer()).AnalyzeSequence(context.Background(), src, SequenceOptions{})
	if err != nil {
		t.Fatalf("AnalyzeSequence failed: %v", err)
	}
	if report.FrameCount != 3 || len(report.PerFrame) != 3 {
		t.Fatalf("Expected 3 frame results, got count=%d len=%d", report.FrameCount, len(report.PerFrame))
	}
	for i, r := range report.PerFrame {
		if r.FrameIndex != i {
			t.Errorf("Expected frame index %d at position %d, got %d", i, i, r.FrameIndex)
		}
	}
	if report.OverallMax == nil || report.OverallMax.FrameIndex != 1 {
		t.Errorf("Expected overall max at frame 1, got %+v", report.OverallMax)
	}
	if report.ID == "" {
		t.Error("Expected report ID to be set")
	}
}

func TestAnalyzeSequence_OverallMaxTieKeepsEarlierFrame(t *testing.T) {
	src := &sliceSource{frames: []*Frame{
		newUniformFrame(4, 4, 100, 100, 100),
		newUniformFrame(4, 4, 100, 100, 100),
	}}

	report, err := NewSession(NewAnalyzer()).AnalyzeSequence(context.Background(), src, SequenceOptions{})
	if err != nil {
		t.Fatalf("AnalyzeSequence failed: %v", err)
	}
	if report.OverallMax == nil {
		t.Fatal("Expected overall max to be set")
	}
	if report.OverallMax.FrameIndex != 0 {
		t.Errorf("Expected tie broken to frame 0, got frame %d", report.OverallMax.FrameIndex)
	}
}

func TestAnalyzeSequence_Empty(t *testing.T) {
	report, err := NewSession(NewAnalyzer()).AnalyzeSequence(context.Background(), &sliceSource{}, SequenceOptions{})
	if err != nil {
		t.Fatalf("AnalyzeSequence failed: %v", err)
	}
	if report.FrameCount != 0 {
		t.Errorf("Expected frame count 0, got %d", report.FrameCount)
	}
	if report.OverallMax != nil {
		t.Errorf("Expected absent overall max, got %+v", report.OverallMax)
	}
	if report.Stats != nil {
		t.Errorf("Expected no stats for empty report, got %+v", report.Stats)
	}
}

func TestAnalyzeSequence_CancellationKeepsPartialReport(t *testing.T) {
	const k = 7
	ctx, cancel := context.WithCancel(context.Background())

	report, err := NewSession(NewAnalyzer()).AnalyzeSequence(ctx, &endlessSource{value: 50}, SequenceOptions{
		Progress: func(analyzed, seen int) {
			if analyzed == k {
				cancel()
			}
		},
	})
	if err != nil {
		t.Fatalf("AnalyzeSequence failed: %v", err)
	}
	if !report.Cancelled {
		t.Error("Expected report to be marked cancelled")
	}
	if report.FrameCount != k {
		t.Errorf("Expected exactly %d frame results after cancellation, got %d", k, report.FrameCount)
	}
	if report.OverallMax == nil || report.OverallMax.FrameIndex != 0 {
		t.Errorf("Expected consistent overall max at frame 0, got %+v", report.OverallMax)
	}
}

func TestAnalyzeSequence_MaxFrames(t *testing.T) {
	report, err := NewSession(NewAnalyzer()).AnalyzeSequence(context.Background(), &endlessSource{value: 30}, SequenceOptions{
		MaxFrames: 5,
	})
	if err != nil {
		t.Fatalf("AnalyzeSequence failed: %v", err)
	}
	if report.FrameCount != 5 {
		t.Errorf("Expected 5 frame results, got %d", report.FrameCount)
	}
	if report.Cancelled {
		t.Error("Frame limit is a normal end, not a cancellation")
	}
}

func TestAnalyzeSequence_SampleRate(t *testing.T) {
	frames := make([]*Frame, 10)
	for i := range frames {
		frames[i] = newUniformFrame(4, 4, uint8(10*i), uint8(10*i), uint8(10*i))
	}

	report, err := NewSession(NewAnalyzer()).AnalyzeSequence(context.Background(), &sliceSource{frames: frames}, SequenceOptions{
		SampleRate: 3,
	})
	if err != nil {
		t.Fatalf("AnalyzeSequence failed: %v", err)
	}
	// Frames 0, 3, 6, 9 are analyzed; indices report the stream position.
	if report.FrameCount != 4 {
		t.Fatalf("Expected 4 sampled frames, got %d", report.FrameCount)
	}
	if report.FramesSeen != 10 {
		t.Errorf("Expected 10 frames seen, got %d", report.FramesSeen)
	}
	wantIndices := []int{0, 3, 6, 9}
	for i, r := range report.PerFrame {
		if r.FrameIndex != wantIndices[i] {
			t.Errorf("Expected frame index %d at position %d, got %d", wantIndices[i], i, r.FrameIndex)
		}
	}
	if report.OverallMax == nil || report.OverallMax.FrameIndex != 9 {
		t.Errorf("Expected overall max at frame 9, got %+v", report.OverallMax)
	}
}

func TestAnalyzeSequence_InvalidFrameAborts(t *testing.T) {
	src := &sliceSource{frames: []*Frame{
		newUniformFrame(4, 4, 10, 10, 10),
		{Width: 0, Height: 4},
		newUniformFrame(4, 4, 90, 90, 90),
	}}

	report, err := NewSession(NewAnalyzer()).AnalyzeSequence(context.Background(), src, SequenceOptions{})
	if !errors.Is(err, apperrors.ErrInvalidFrame) {
		t.Fatalf("Expected ErrInvalidFrame, got %v", err)
	}
	if report == nil || report.FrameCount != 1 {
		t.Errorf("Expected partial report with 1 frame, got %+v", report)
	}
}

func TestAnalyzeSequence_UpstreamFailureIsNormalEnd(t *testing.T) {
	src := &failingSource{frames: []*Frame{newUniformFrame(4, 4, 60, 60, 60)}}

	report, err := NewSession(NewAnalyzer()).AnalyzeSequence(context.Background(), src, SequenceOptions{})
	if err != nil {
		t.Fatalf("Upstream failure should finalize, not fail: %v", err)
	}
	if report.FrameCount != 1 {
		t.Errorf("Expected 1 frame before upstream failure, got %d", report.FrameCount)
	}
}

// failingSource yields its frames then a non-EOF error.
type failingSource struct {
	frames []*Frame
	pos    int
}

func (s *failingSource) Next(ctx context.Context) (*Frame, error) {
	if s.pos >= len(s.frames) {
		return nil, errors.New("camera connection lost")
	}
	f := s.frames[s.pos]
	s.pos++
	return f, nil
}

func TestSession_SingleUse(t *testing.T) {
	session := NewSession(NewAnalyzer())
	if _, err := session.AnalyzeSequence(context.Background(), &sliceSource{}, SequenceOptions{}); err != nil {
		t.Fatalf("AnalyzeSequence failed: %v", err)
	}
	if _, err := session.AnalyzeSequence(context.Background(), &sliceSource{}, SequenceOptions{}); !errors.Is(err, apperrors.ErrSessionFinalized) {
		t.Errorf("Expected ErrSessionFinalized on reuse, got %v", err)
	}
	if _, err := session.AnalyzeFrame(newUniformFrame(2, 2, 1, 1, 1)); !errors.Is(err, apperrors.ErrSessionFinalized) {
		t.Errorf("Expected ErrSessionFinalized on push after finalize, got %v", err)
	}
}

func TestSession_PushFrames(t *testing.T) {
	session := NewSession(NewAnalyzer())
	for _, v := range []uint8{20, 80, 40} {
		if _, err := session.AnalyzeFrame(newUniformFrame(4, 4, v, v, v)); err != nil {
			t.Fatalf("AnalyzeFrame failed: %v", err)
		}
	}
	report := session.Report()
	if report.FrameCount != 3 {
		t.Fatalf("Expected 3 frames, got %d", report.FrameCount)
	}
	if report.OverallMax == nil || report.OverallMax.FrameIndex != 1 {
		t.Errorf("Expected overall max at frame 1, got %+v", report.OverallMax)
	}
	if report.Stats == nil {
		t.Fatal("Expected stats on finalized report")
	}
	if report.Stats.MinMaxBrightness != 20 {
		t.Errorf("Expected min max brightness 20, got %v", report.Stats.MinMaxBrightness)
	}
}
