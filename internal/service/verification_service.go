package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	apperrors "github.com/bagcheck/authenticity-api/internal/errors"
	"github.com/bagcheck/authenticity-api/internal/logger"
	"github.com/bagcheck/authenticity-api/internal/observer"
	"github.com/bagcheck/authenticity-api/internal/verdict"
	"github.com/bagcheck/authenticity-api/pkg/models"

	"github.com/sirupsen/logrus"
)

// VerificationService turns a validated upload into a verdict
type VerificationService interface {
	// Verify always returns a well-formed result. The error is non-nil only when
	// the engine failed and the result is the generic server error verdict.
	Verify(ctx context.Context, req models.VerifyRequest) (models.VerdictResult, error)
}

// Evaluator runs the verdict pipeline
type Evaluator interface {
	Evaluate(ctx context.Context, req models.VerifyRequest) verdict.Assessment
}

type verificationService struct {
	engine    Evaluator
	publisher observer.Subject
}

// NewVerificationService creates a new verification service
func NewVerificationService(engine Evaluator, publisher observer.Subject) VerificationService {
	return &verificationService{
		engine:    engine,
		publisher: publisher,
	}
}

func (s *verificationService) Verify(ctx context.Context, req models.VerifyRequest) (result models.VerdictResult, err error) {
	start := time.Now()
	s.publish(ctx, observer.VerificationEvent{
		EventType:  observer.VerificationStarted,
		RequestID:  req.RequestID,
		ImageCount: len(req.Images),
		Success:    true,
	})

	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewInternalError("verification panicked", fmt.Errorf("%v", r))
			result = models.NewInconclusiveResult(models.ServerErrorReason)

			logger.WithRequestID(req.RequestID).WithError(err).WithFields(logrus.Fields{
				"stack": string(debug.Stack()),
			}).Error("Recovered from panic during verification")

			s.publish(ctx, observer.VerificationEvent{
				EventType:      observer.VerificationFailed,
				RequestID:      req.RequestID,
				ImageCount:     len(req.Images),
				Verdict:        string(result.Verdict),
				ProcessingTime: time.Since(start),
				ErrorMessage:   err.Error(),
			})
		}
	}()

	assessment := s.engine.Evaluate(ctx, req)

	if assessment.OCRAttempted {
		s.publish(ctx, observer.VerificationEvent{
			EventType: observer.SerialExtracted,
			RequestID: req.RequestID,
			Success:   assessment.SerialText != "",
		})
	}

	s.publish(ctx, observer.VerificationEvent{
		EventType:      observer.VerificationCompleted,
		RequestID:      req.RequestID,
		ImageCount:     len(req.Images),
		Verdict:        string(assessment.Result.Verdict),
		Confidence:     assessment.Result.Confidence,
		ProcessingTime: time.Since(start),
		Success:        true,
		Metadata: map[string]interface{}{
			"brand":          string(assessment.Brand),
			"model":          assessment.Model,
			"red_flags":      len(assessment.Result.RedFlags),
			"missing_photos": len(assessment.Result.MissingPhotos),
		},
	})

	return assessment.Result, nil
}

func (s *verificationService) publish(ctx context.Context, event observer.VerificationEvent) {
	if s.publisher == nil {
		return
	}
	s.publisher.NotifyObservers(ctx, event)
}
