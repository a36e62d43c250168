package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsStatusCodes(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("bad", nil), ErrorTypeValidation, http.StatusBadRequest},
		{"unsupported media", NewUnsupportedMediaError("pdf", nil), ErrorTypeUnsupportedMedia, http.StatusUnsupportedMediaType},
		{"too large", NewPayloadTooLargeError("big", nil), ErrorTypePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{"ocr", NewOCRError("tesseract", cause), ErrorTypeOCR, http.StatusBadGateway},
		{"timeout", NewTimeoutError("slow", cause), ErrorTypeTimeout, http.StatusGatewayTimeout},
		{"not found", NewNotFoundError("gone", nil), ErrorTypeNotFound, http.StatusNotFound},
		{"internal", NewInternalError("oops", cause), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", tt.err.Type, tt.wantType)
			}
			if got := GetStatusCode(tt.err); got != tt.wantCode {
				t.Errorf("GetStatusCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestWrappedAppError(t *testing.T) {
	cause := errors.New("disk on fire")
	wrapped := fmt.Errorf("verify: %w", NewInternalError("failed", cause))

	if !IsType(wrapped, ErrorTypeInternal) {
		t.Error("IsType() = false for wrapped internal error, want true")
	}
	if GetStatusCode(wrapped) != http.StatusInternalServerError {
		t.Errorf("GetStatusCode() = %d, want 500", GetStatusCode(wrapped))
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is() did not find the cause through Unwrap")
	}
}

func TestPlainErrorDefaults(t *testing.T) {
	err := errors.New("plain")
	if IsType(err, ErrorTypeValidation) {
		t.Error("IsType() = true for plain error, want false")
	}
	if GetStatusCode(err) != http.StatusInternalServerError {
		t.Errorf("GetStatusCode() = %d, want 500", GetStatusCode(err))
	}
}

func TestErrorMessage(t *testing.T) {
	err := NewValidationError("Too many images", nil)
	if got := err.Error(); got != "validation: Too many images" {
		t.Errorf("Error() = %q", got)
	}
}
