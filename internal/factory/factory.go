package factory

import (
	"context"
	"fmt"
	"strings"

	"github.com/bagcheck/authenticity-api/internal/config"
	"github.com/bagcheck/authenticity-api/internal/ocr"
)

// ProviderType represents the OCR backend used to read serial photos
type ProviderType string

const (
	// NoProvider disables OCR; serial photos are reported as unreadable
	NoProvider ProviderType = config.OCRProviderNone
	// TesseractProvider runs a local Tesseract installation
	TesseractProvider ProviderType = config.OCRProviderTesseract
	// RekognitionProvider calls AWS Rekognition DetectText
	RekognitionProvider ProviderType = config.OCRProviderRekognition
	// GeminiProvider asks a Gemini model to transcribe the code
	GeminiProvider ProviderType = config.OCRProviderGemini
)

// ExtractorFactory creates OCR extractors
type ExtractorFactory interface {
	CreateExtractor(ctx context.Context, providerType ProviderType) (ocr.Extractor, error)
}

// extractorFactory implements ExtractorFactory
type extractorFactory struct {
	cfg *config.Config
}

// NewExtractorFactory creates a new extractor factory
func NewExtractorFactory(cfg *config.Config) ExtractorFactory {
	return &extractorFactory{cfg: cfg}
}

// CreateExtractor creates an extractor based on the specified type
func (f *extractorFactory) CreateExtractor(ctx context.Context, providerType ProviderType) (ocr.Extractor, error) {
	switch ProviderType(strings.ToLower(string(providerType))) {
	case NoProvider, "":
		return ocr.Disabled{}, nil
	case TesseractProvider:
		return ocr.NewTesseract(f.cfg.OCRLanguage), nil
	case RekognitionProvider:
		return ocr.NewRekognition(ctx, f.cfg.AWSRegion)
	case GeminiProvider:
		if f.cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return ocr.NewGemini(ctx, f.cfg.GeminiAPIKey, f.cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unsupported OCR provider: %s", providerType)
	}
}
