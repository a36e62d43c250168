package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// VerificationEvent represents a step in the life of one verification request
type VerificationEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	RequestID      string                 `json:"request_id"`
	ImageCount     int                    `json:"image_count"`
	Verdict        string                 `json:"verdict,omitempty"`
	Confidence     int                    `json:"confidence,omitempty"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of verification event
type EventType string

const (
	// VerificationStarted when a request reaches the engine
	VerificationStarted EventType = "verification_started"
	// VerificationCompleted when a verdict was produced
	VerificationCompleted EventType = "verification_completed"
	// VerificationFailed when the engine failed and a fallback verdict was returned
	VerificationFailed EventType = "verification_failed"
	// SerialExtracted when the serial photo was sent to OCR
	SerialExtracted EventType = "serial_extracted"
	// SerialExtractionFailed when the OCR provider errored or timed out
	SerialExtractionFailed EventType = "serial_extraction_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event VerificationEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event VerificationEvent)
}

// LoggingObserver logs verification events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles verification events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event VerificationEvent) {
	fields := logrus.Fields{
		"event_type":         event.EventType,
		"request_id":         event.RequestID,
		"image_count":        event.ImageCount,
		"processing_time_ms": event.ProcessingTime.Milliseconds(),
		"success":            event.Success,
	}

	if event.Verdict != "" {
		fields["verdict"] = event.Verdict
		fields["confidence"] = event.Confidence
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	switch event.EventType {
	case VerificationStarted:
		o.logger.WithFields(fields).Debug("Verification started")
	case VerificationCompleted:
		o.logger.WithFields(fields).Info("Verification completed")
	case VerificationFailed:
		o.logger.WithFields(fields).Error("Verification failed")
	case SerialExtracted:
		o.logger.WithFields(fields).Debug("Serial photo sent to OCR")
	case SerialExtractionFailed:
		o.logger.WithFields(fields).Warn("Serial extraction failed")
	default:
		o.logger.WithFields(fields).Info("Verification event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects in-process counters from verification events
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalRequests       int64
	completedRequests   int64
	failedRequests      int64
	verdicts            map[string]int64
	ocrAttempts         int64
	ocrFailures         int64
	serialsRead         int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		verdicts: make(map[string]int64),
	}
}

// OnEvent handles verification events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event VerificationEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case VerificationStarted:
		o.totalRequests++
	case VerificationCompleted:
		o.completedRequests++
		o.verdicts[event.Verdict]++
		o.totalProcessingTime += event.ProcessingTime
	case VerificationFailed:
		o.failedRequests++
		o.verdicts[event.Verdict]++
	case SerialExtracted:
		o.ocrAttempts++
		if event.Success {
			o.serialsRead++
		}
	case SerialExtractionFailed:
		o.ocrFailures++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.completedRequests > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.completedRequests)
	}

	verdicts := make(map[string]int64, len(o.verdicts))
	for k, v := range o.verdicts {
		verdicts[k] = v
	}

	return map[string]interface{}{
		"total_requests":         o.totalRequests,
		"completed_requests":     o.completedRequests,
		"failed_requests":        o.failedRequests,
		"verdicts":               verdicts,
		"ocr_attempts":           o.ocrAttempts,
		"ocr_failures":           o.ocrFailures,
		"serials_read":           o.serialsRead,
		"avg_processing_time_ms": avgProcessingTime.Milliseconds(),
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
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

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event VerificationEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	// Notify observers concurrently
	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					// Log panic but don't crash the application
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(context.WithoutCancel(ctx), event)
		}(observer)
	}
}
