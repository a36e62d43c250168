package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// serialAlphabet restricts Tesseract to characters that appear in serials and date codes
const serialAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Tesseract reads text with a local Tesseract installation.
// gosseract clients are not safe for concurrent use, so one is created per call.
type Tesseract struct {
	language string
}

// NewTesseract creates a Tesseract extractor for the given language, "eng" by default
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{language: language}
}

func (t *Tesseract) Name() string { return "tesseract" }

// ExtractText runs Tesseract on the image. The cgo call itself cannot be interrupted;
// Guard bounds how long the caller waits for it.
func (t *Tesseract) ExtractText(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("set language %q: %w", t.language, err)
	}
	if err := client.SetWhitelist(serialAlphabet); err != nil {
		return "", fmt.Errorf("set whitelist: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SPARSE_TEXT); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
