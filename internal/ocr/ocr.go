package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/bagcheck/authenticity-api/internal/errors"
	"github.com/bagcheck/authenticity-api/internal/logger"

	"github.com/sirupsen/logrus"
)

// Extractor is a text extraction backend
type Extractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
	Name() string
}

// Disabled never reads anything. It is used when no OCR provider is configured.
type Disabled struct{}

func (Disabled) ExtractText(context.Context, []byte) (string, error) { return "", nil }

func (Disabled) Name() string { return "none" }

// FailureFunc is called whenever a guarded extraction fails
type FailureFunc func(provider string, err error)

// Guard bounds an Extractor with a timeout and turns every failure into empty text.
type Guard struct {
	extractor Extractor
	timeout   time.Duration
	onFailure FailureFunc
}

// NewGuard wraps extractor. A non-positive timeout defaults to 10s.
func NewGuard(extractor Extractor, timeout time.Duration) *Guard {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Guard{
		extractor: extractor,
		timeout:   timeout,
	}
}

// OnFailure registers a callback for failed extractions
func (g *Guard) OnFailure(fn FailureFunc) {
	g.onFailure = fn
}

type extraction struct {
	text string
	err  error
}

// ExtractText runs the wrapped extractor. Client cancellation does not cut the
// call short; only the guard's own timeout does.
func (g *Guard) ExtractText(ctx context.Context, image []byte) string {
	if g.extractor == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
	defer cancel()

	done := make(chan extraction, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- extraction{err: fmt.Errorf("extractor panicked: %v", r)}
			}
		}()
		text, err := g.extractor.ExtractText(ctx, image)
		done <- extraction{text: text, err: err}
	}()

	var res extraction
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = apperrors.NewTimeoutError("text extraction timed out", ctx.Err())
	}

	if res.err != nil {
		g.fail(res.err)
		return ""
	}
	return strings.TrimSpace(res.text)
}

func (g *Guard) fail(err error) {
	provider := g.extractor.Name()

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		err = apperrors.NewOCRError(provider, err)
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"provider": provider,
	}).Warn("Text extraction failed")

	if g.onFailure != nil {
		g.onFailure(provider, err)
	}
}
