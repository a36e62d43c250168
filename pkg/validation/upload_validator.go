package validation

import (
	"encoding/json"
	"fmt"
	"mime"
	"strings"

	apperrors "github.com/bagcheck/authenticity-api/internal/errors"
	"github.com/bagcheck/authenticity-api/pkg/models"
)

// UploadValidator handles upload limit checks for POST /verify
type UploadValidator struct {
	maxFiles    int
	maxFileSize int64
}

// NewUploadValidator creates an upload validator with the default limits (10 files, 10MB each)
func NewUploadValidator() *UploadValidator {
	return &UploadValidator{
		maxFiles:    10,
		maxFileSize: 10 * 1024 * 1024,
	}
}

// NewUploadValidatorWithLimits creates an upload validator with custom limits
func NewUploadValidatorWithLimits(maxFiles int, maxFileSize int64) *UploadValidator {
	return &UploadValidator{
		maxFiles:    maxFiles,
		maxFileSize: maxFileSize,
	}
}

// ValidateFileCount checks the number of uploaded images. Zero is allowed.
func (v *UploadValidator) ValidateFileCount(count int) error {
	if count > v.maxFiles {
		return apperrors.NewValidationError(
			fmt.Sprintf("Too many images: at most %d files are accepted", v.maxFiles), nil)
	}
	return nil
}

// ValidateFile checks one upload's declared media type and size
func (v *UploadValidator) ValidateFile(filename string, size int64, contentType string) error {
	if size > v.maxFileSize {
		return apperrors.NewPayloadTooLargeError(
			fmt.Sprintf("Image %s exceeds the %d byte limit", filename, v.maxFileSize), nil)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return apperrors.NewUnsupportedMediaError(
			fmt.Sprintf("Image %s has no valid media type", filename), err)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return apperrors.NewUnsupportedMediaError(
			fmt.Sprintf("Only image uploads are accepted: %s is %s", filename, mediaType), nil)
	}

	return nil
}

// ParseLabels decodes the labels form field. It accepts a JSON object mapping
// filename to view label, or the same object encoded as a JSON string.
// Entries whose value is not a known view label are dropped.
func ParseLabels(raw string) (map[string]models.ViewLabel, error) {
	labels := make(map[string]models.ViewLabel)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return labels, nil
	}

	var entries map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		var encoded string
		if strErr := json.Unmarshal([]byte(raw), &encoded); strErr != nil {
			return nil, apperrors.NewValidationError("Malformed labels JSON", err)
		}
		if err := json.Unmarshal([]byte(encoded), &entries); err != nil {
			return nil, apperrors.NewValidationError("Malformed labels JSON", err)
		}
	}

	for filename, value := range entries {
		s, ok := value.(string)
		if !ok {
			continue
		}
		if label, ok := models.ParseViewLabel(s); ok {
			labels[filename] = label
		}
	}

	return labels, nil
}
