package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	apperrors "go-brightness-finder/internal/errors"
	"go-brightness-finder/pkg/models"
)

// FrameSource produces decoded frames in acquisition order. Next returns
// io.EOF when the sequence is exhausted; any other error is an upstream
// capture or decode fault and ends the sequence as well. Sources are not
// restartable.
type FrameSource interface {
	Next(ctx context.Context) (*Frame, error)
}

// SequenceOptions tune one sequence analysis. The zero value analyzes
// every frame with no limit.
type SequenceOptions struct {
	// SampleRate analyzes every Nth frame; values below 2 analyze all.
	// Skipped frames still advance the frame index, so FrameIndex always
	// reports the true position in the stream.
	SampleRate int

	// MaxFrames stops the session after this many analyzed frames.
	// Zero means unlimited.
	MaxFrames int

	// Progress, when set, is called after each analyzed frame with the
	// number of frames analyzed and the number seen so far.
	Progress func(analyzed, seen int)
}

// Session accumulates the report of one analysis run. Each session owns
// its report; nothing is shared across concurrent sessions. A session is
// single-use: once its report is finalized it cannot accept more frames.
type Session struct {
	analyzer  *Analyzer
	report    *models.AnalysisReport
	finalized bool
}

// NewSession starts an analysis session with an empty report.
func NewSession(analyzer *Analyzer) *Session {
	return &Session{
		analyzer: analyzer,
		report: &models.AnalysisReport{
			ID:       uuid.NewString(),
			PerFrame: []models.FrameResult{},
		},
	}
}

// ID returns the session's report identifier.
func (s *Session) ID() string {
	return s.report.ID
}

// AnalyzeSequence consumes frames from src until the source is exhausted,
// the context is cancelled, or an invalid frame aborts the run.
//
// Frames are analyzed one at a time with frame indices incrementing from
// 0; results are appended in strict frame order and the overall maximum is
// updated incrementally (larger brightness wins, equal brightness keeps
// the earlier frame). Cancellation is checked between frames, never
// mid-scan, so no partial frame result is ever emitted; the report built
// so far is finalized and returned as a valid partial result. A frame
// with zero width or height aborts the sequence, returning the partial
// report together with the error.
func (s *Session) AnalyzeSequence(ctx context.Context, src FrameSource, opts SequenceOptions) (*models.AnalysisReport, error) {
	if s.finalized {
		return s.report, apperrors.ErrSessionFinalized
	}

	sampleRate := opts.SampleRate
	if sampleRate < 1 {
		sampleRate = 1
	}

	for {
		if opts.MaxFrames > 0 && len(s.report.PerFrame) >= opts.MaxFrames {
			break
		}

		select {
		case <-ctx.Done():
			s.report.Cancelled = true
			return s.finalize(), nil
		default:
		}

		frame, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				s.report.Cancelled = true
				return s.finalize(), nil
			}
			// io.EOF and upstream capture/decode failures both surface as
			// sequence termination; the partial report stays valid.
			if !errors.Is(err, io.EOF) {
				return s.finalize(), nil
			}
			break
		}

		frameIndex := s.report.FramesSeen
		s.report.FramesSeen++

		if (frameIndex % sampleRate) != 0 {
			continue
		}

		result, err := s.analyzer.AnalyzeFrame(frame, frameIndex)
		if err != nil {
			return s.finalize(), apperrors.NewProcessingError(
				fmt.Sprintf("frame %d rejected, aborting sequence", frameIndex), err)
		}
		s.append(result)

		if opts.Progress != nil {
			opts.Progress(len(s.report.PerFrame), s.report.FramesSeen)
		}
	}

	return s.finalize(), nil
}

// AnalyzeFrame runs a single frame through the session, for callers that
// push frames instead of providing a source.
func (s *Session) AnalyzeFrame(frame *Frame) (models.FrameResult, error) {
	if s.finalized {
		return models.FrameResult{}, apperrors.ErrSessionFinalized
	}
	result, err := s.analyzer.AnalyzeFrame(frame, s.report.FramesSeen)
	if err != nil {
		return models.FrameResult{}, err
	}
	s.report.FramesSeen++
	s.append(result)
	return result, nil
}

// Report finalizes the session and returns its report. Safe to call after
// AnalyzeSequence; further frames are rejected.
func (s *Session) Report() *models.AnalysisReport {
	return s.finalize()
}

// append records one frame result and folds it into the running overall
// maximum. Results arrive in increasing frame order, so a strictly
// greater comparison is enough to keep the earliest frame among ties.
func (s *Session) append(result models.FrameResult) {
	s.report.PerFrame = append(s.report.PerFrame, result)
	if s.report.OverallMax == nil || result.MaxBrightness > s.report.OverallMax.MaxBrightness {
		r := result
		s.report.OverallMax = &r
	}
}

func (s *Session) finalize() *models.AnalysisReport {
	if s.finalized {
		return s.report
	}
	s.finalized = true
	s.report.FrameCount = len(s.report.PerFrame)
	if s.report.FrameCount > 0 {
		s.report.Stats = sequenceStats(s.report.PerFrame)
	}
	return s.report
}
