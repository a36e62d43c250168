package container

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bagcheck/authenticity-api/internal/config"
	"github.com/bagcheck/authenticity-api/internal/factory"
	"github.com/bagcheck/authenticity-api/internal/logger"
	"github.com/bagcheck/authenticity-api/internal/observer"
	"github.com/bagcheck/authenticity-api/internal/ocr"
	"github.com/bagcheck/authenticity-api/internal/service"
	"github.com/bagcheck/authenticity-api/internal/transport"
	"github.com/bagcheck/authenticity-api/internal/verdict"
	"github.com/bagcheck/authenticity-api/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	config              *config.Config
	extractor           ocr.Extractor
	publisher           *observer.EventPublisher
	metrics             *observer.MetricsObserver
	verificationService service.VerificationService
	handler             http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	extractor, err := factory.NewExtractorFactory(cfg).CreateExtractor(ctx, factory.ProviderType(cfg.OCRProvider))
	if err != nil {
		return nil, fmt.Errorf("failed to create OCR provider: %w", err)
	}

	// Build dependency graph
	publisher := observer.NewEventPublisher()
	metrics := observer.NewMetricsObserver()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	guard := ocr.NewGuard(extractor, cfg.OCRTimeout)
	guard.OnFailure(func(provider string, err error) {
		publisher.NotifyObservers(context.Background(), observer.VerificationEvent{
			EventType:    observer.SerialExtractionFailed,
			ErrorMessage: err.Error(),
			Metadata:     map[string]interface{}{"provider": provider},
		})
	})

	engine := verdict.NewEngine(guard, validation.NewQualityValidator())
	verificationService := service.NewVerificationService(engine, publisher)
	handler := transport.NewHandler(verificationService, metrics, cfg)

	logger.WithField("ocr_provider", extractor.Name()).Info("Verification engine ready")

	return &Container{
		config:              cfg,
		extractor:           extractor,
		publisher:           publisher,
		metrics:             metrics,
		verificationService: verificationService,
		handler:             handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Metrics returns the in-process verification counters
func (c *Container) Metrics() *observer.MetricsObserver {
	return c.metrics
}

// Close releases clients held by the OCR provider
func (c *Container) Close() error {
	if closer, ok := c.extractor.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
