package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// EventType labels the lifecycle stage a session event belongs to.
type EventType string

const (
	// SessionStarted fires when a sequence analysis begins.
	SessionStarted EventType = "session_started"
	// SessionCompleted fires when a report is finalized normally.
	SessionCompleted EventType = "session_completed"
	// SessionCancelled fires when a report is finalized after cancellation.
	SessionCancelled EventType = "session_cancelled"
	// SessionFailed fires when a sequence aborts on an invalid frame.
	SessionFailed EventType = "session_failed"
	// MediaFetchFailed fires when the media payload could not be fetched.
	MediaFetchFailed EventType = "media_fetch_failed"
)

// SessionEvent describes one analysis session lifecycle event.
type SessionEvent struct {
	EventType      EventType     `json:"event_type"`
	Timestamp      time.Time     `json:"timestamp"`
	SessionID      string        `json:"session_id"`
	MediaURL       string        `json:"media_url"`
	FrameCount     int           `json:"frame_count"`
	ProcessingTime time.Duration `json:"processing_time"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// Observer receives session events.
type Observer interface {
	OnEvent(ctx context.Context, event SessionEvent)
	GetObserverName() string
}

// Subject publishes session events to subscribed observers.
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event SessionEvent)
}

// LoggingObserver logs session events with structured fields.
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a logging observer.
func NewLoggingObserver(logger *logrus.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

func (o *LoggingObserver) OnEvent(ctx context.Context, event SessionEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"session_id":      event.SessionID,
		"media_url":       event.MediaURL,
		"frame_count":     event.FrameCount,
		"processing_time": event.ProcessingTime,
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	switch event.EventType {
	case SessionStarted:
		o.logger.WithFields(fields).Info("Analysis session started")
	case SessionCompleted:
		o.logger.WithFields(fields).Info("Analysis session completed")
	case SessionCancelled:
		o.logger.WithFields(fields).Info("Analysis session cancelled")
	case SessionFailed:
		o.logger.WithFields(fields).Error("Analysis session failed")
	case MediaFetchFailed:
		o.logger.WithFields(fields).Error("Media fetch failed")
	default:
		o.logger.WithFields(fields).Info("Session event occurred")
	}
}

func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver aggregates counters over session events, served on the
// metrics endpoint.
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalSessions       int64
	completedSessions   int64
	cancelledSessions   int64
	failedSessions      int64
	framesAnalyzed      int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a metrics observer.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

func (o *MetricsObserver) OnEvent(ctx context.Context, event SessionEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case SessionStarted:
		o.totalSessions++
	case SessionCompleted:
		o.completedSessions++
		o.framesAnalyzed += int64(event.FrameCount)
		o.totalProcessingTime += event.ProcessingTime
	case SessionCancelled:
		o.cancelledSessions++
		o.framesAnalyzed += int64(event.FrameCount)
		o.totalProcessingTime += event.ProcessingTime
	case SessionFailed, MediaFetchFailed:
		o.failedSessions++
	}
}

func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns a snapshot of the collected counters.
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if finished := o.completedSessions + o.cancelledSessions; finished > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(finished)
	}

	return map[string]interface{}{
		"total_sessions":        o.totalSessions,
		"completed_sessions":    o.completedSessions,
		"cancelled_sessions":    o.cancelledSessions,
		"failed_sessions":       o.failedSessions,
		"frames_analyzed":       o.framesAnalyzed,
		"total_processing_time": o.totalProcessingTime.String(),
		"avg_processing_time":   avgProcessingTime.String(),
	}
}

// EventPublisher implements Subject.
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates an event publisher with no observers.
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{observers: make([]Observer, 0)}
}

func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers delivers the event to every observer. Observers run
// synchronously so counters are consistent when the caller returns; a
// panicking observer is isolated and logged.
func (p *EventPublisher) NotifyObservers(ctx context.Context, event SessionEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
