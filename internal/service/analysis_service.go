package service

import (
	"context"
	"errors"
	"time"

	"go-brightness-finder/internal/config"
	"go-brightness-finder/internal/engine"
	apperrors "go-brightness-finder/internal/errors"
	"go-brightness-finder/internal/factory"
	"go-brightness-finder/internal/logger"
	"go-brightness-finder/internal/observer"
	"go-brightness-finder/internal/repository"
	"go-brightness-finder/internal/source"
	"go-brightness-finder/pkg/models"

	"github.com/sirupsen/logrus"
)

// AnalysisService defines the media analysis operations exposed over the
// API.
type AnalysisService interface {
	// AnalyzeMedia fetches the media at the given URL and reports the
	// brightest pixel of every frame.
	AnalyzeMedia(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResponse, error)

	// AnalyzeMediaDetailed additionally breaks down the brightest frame of
	// the sequence: region statistics around the maximum, frame mean, and
	// a brightness histogram.
	AnalyzeMediaDetailed(ctx context.Context, req models.DetailedAnalyzeRequest) (*models.DetailedAnalysisResponse, error)
}

// BrightnessAnalysisService implements AnalysisService.
type BrightnessAnalysisService struct {
	mediaRepo repository.MediaRepository
	factory   factory.SourceFactory
	analyzer  *engine.Analyzer
	publisher observer.Subject
	config    *config.Config
}

// NewBrightnessAnalysisService creates the analysis service.
func NewBrightnessAnalysisService(
	mediaRepo repository.MediaRepository,
	sourceFactory factory.SourceFactory,
	analyzer *engine.Analyzer,
	publisher observer.Subject,
	cfg *config.Config,
) *BrightnessAnalysisService {
	return &BrightnessAnalysisService{
		mediaRepo: mediaRepo,
		factory:   sourceFactory,
		analyzer:  analyzer,
		publisher: publisher,
		config:    cfg,
	}
}

// sequenceRun is the outcome of one fetch-decode-analyze pass. The
// sequence is kept so the detailed path can revisit the brightest frame.
type sequenceRun struct {
	sequence source.Sequence
	kind     factory.MediaKind
	report   *models.AnalysisReport
	elapsed  time.Duration
}

func (s *BrightnessAnalysisService) AnalyzeMedia(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResponse, error) {
	run, err := s.runSequence(ctx, req.URL, req.SampleRate, req.MaxFrames)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(req.URL, run), nil
}

func (s *BrightnessAnalysisService) AnalyzeMediaDetailed(ctx context.Context, req models.DetailedAnalyzeRequest) (*models.DetailedAnalysisResponse, error) {
	run, err := s.runSequence(ctx, req.URL, req.SampleRate, req.MaxFrames)
	if err != nil {
		return nil, err
	}

	resp := &models.DetailedAnalysisResponse{
		AnalysisResponse: *s.buildResponse(req.URL, run),
	}

	if run.report.OverallMax == nil {
		return resp, nil
	}

	radius := req.RegionRadius
	if radius <= 0 {
		radius = s.config.RegionRadius
	}

	// Revisit the brightest frame through the sequence's random access
	// rather than holding frame buffers through the scan.
	frame, ok := run.sequence.FrameAt(run.report.OverallMax.FrameIndex)
	if !ok {
		return nil, apperrors.NewInternalError("brightest frame no longer addressable", nil)
	}
	detail, err := s.analyzer.AnalyzeFrameDetailed(frame, run.report.OverallMax.FrameIndex, radius)
	if err != nil {
		return nil, apperrors.NewProcessingError("detailed analysis of brightest frame failed", err)
	}
	resp.BrightestFrame = &detail
	return resp, nil
}

// runSequence validates, fetches, decodes, and analyzes the media at the
// given URL, publishing session lifecycle events along the way.
func (s *BrightnessAnalysisService) runSequence(ctx context.Context, mediaURL string, sampleRate, maxFrames int) (*sequenceRun, error) {
	if err := s.mediaRepo.ValidateMediaURL(mediaURL); err != nil {
		return nil, apperrors.NewValidationError("invalid media URL", err)
	}

	data, err := s.fetchMedia(ctx, mediaURL)
	if err != nil {
		return nil, err
	}

	seq, kind, err := s.factory.SourceForMedia(data)
	if err != nil {
		return nil, apperrors.NewProcessingError("unsupported or corrupt media payload", err)
	}

	if sampleRate < 1 {
		sampleRate = s.config.SampleRate
	}
	if maxFrames <= 0 {
		maxFrames = s.config.MaxFrames
	}

	session := engine.NewSession(s.analyzer)
	s.publishEvent(ctx, observer.SessionEvent{
		EventType: observer.SessionStarted,
		SessionID: session.ID(),
		MediaURL:  mediaURL,
	})

	analysisCtx, cancel := context.WithTimeout(ctx, s.config.AnalysisTimeout)
	defer cancel()

	start := time.Now()
	report, err := session.AnalyzeSequence(analysisCtx, seq, engine.SequenceOptions{
		SampleRate: sampleRate,
		MaxFrames:  maxFrames,
	})
	elapsed := time.Since(start)

	if err != nil {
		s.publishEvent(ctx, observer.SessionEvent{
			EventType:      observer.SessionFailed,
			SessionID:      report.ID,
			MediaURL:       mediaURL,
			FrameCount:     report.FrameCount,
			ProcessingTime: elapsed,
			ErrorMessage:   err.Error(),
		})
		return nil, err
	}

	eventType := observer.SessionCompleted
	if report.Cancelled {
		eventType = observer.SessionCancelled
	}
	s.publishEvent(ctx, observer.SessionEvent{
		EventType:      eventType,
		SessionID:      report.ID,
		MediaURL:       mediaURL,
		FrameCount:     report.FrameCount,
		ProcessingTime: elapsed,
	})

	logger.WithFields(logrus.Fields{
		"session_id":  report.ID,
		"media_kind":  kind,
		"frame_count": report.FrameCount,
		"frames_seen": report.FramesSeen,
		"cancelled":   report.Cancelled,
		"duration":    elapsed,
	}).Info("Sequence analysis finished")

	return &sequenceRun{sequence: seq, kind: kind, report: report, elapsed: elapsed}, nil
}

func (s *BrightnessAnalysisService) fetchMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.config.MediaFetchTimeout)
	defer cancel()

	data, err := s.mediaRepo.FetchMedia(fetchCtx, mediaURL)
	if err != nil {
		s.publishEvent(ctx, observer.SessionEvent{
			EventType:    observer.MediaFetchFailed,
			MediaURL:     mediaURL,
			ErrorMessage: err.Error(),
		})

		switch {
		case errors.Is(err, repository.ErrMediaNotFound):
			return nil, apperrors.NewNotFoundError("media not found", err)
		case errors.Is(err, repository.ErrEmptyMedia):
			return nil, apperrors.NewProcessingError("media payload is empty", err)
		case errors.Is(err, context.DeadlineExceeded):
			return nil, apperrors.NewTimeoutError("media fetch timed out", err)
		default:
			return nil, apperrors.NewNetworkError("failed to fetch media", err)
		}
	}
	return data, nil
}

func (s *BrightnessAnalysisService) buildResponse(mediaURL string, run *sequenceRun) *models.AnalysisResponse {
	return &models.AnalysisResponse{
		MediaURL:          mediaURL,
		MediaKind:         string(run.kind),
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		ProcessingTimeSec: run.elapsed.Seconds(),
		Report:            run.report,
	}
}

func (s *BrightnessAnalysisService) publishEvent(ctx context.Context, event observer.SessionEvent) {
	if s.publisher == nil {
		return
	}
	event.Timestamp = time.Now()
	s.publisher.NotifyObservers(ctx, event)
}
