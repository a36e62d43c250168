package validation

import (
	"fmt"

	"github.com/bagcheck/authenticity-api/pkg/models"
)

// QualityThresholds defines configurable byte-size thresholds for quality grading
type QualityThresholds struct {
	// Below this size an image is poor and does not count toward coverage
	MinUsableBytes int64
	// At or above this size an image is good
	MinGoodBytes int64
	// Serial-bearing photos need this many bytes to be worth reading
	MinSerialClearBytes int64
}

// DefaultQualityThresholds returns the default quality thresholds
func DefaultQualityThresholds() QualityThresholds {
	return QualityThresholds{
		MinUsableBytes:      60000,
		MinGoodBytes:        120000,
		MinSerialClearBytes: 80000,
	}
}

// QualityValidator grades uploaded images. File size is the only legibility signal.
type QualityValidator struct {
	thresholds QualityThresholds
}

// NewQualityValidator creates a new quality validator with default thresholds
func NewQualityValidator() *QualityValidator {
	return &QualityValidator{
		thresholds: DefaultQualityThresholds(),
	}
}

// NewQualityValidatorWithThresholds creates a quality validator with custom thresholds
func NewQualityValidatorWithThresholds(thresholds QualityThresholds) *QualityValidator {
	return &QualityValidator{
		thresholds: thresholds,
	}
}

// QualityIssue represents a quality validation issue
type QualityIssue struct {
	Type        string  `json:"type"`
	Message     string  `json:"message"`
	Severity    string  `json:"severity"` // "error", "warning"
	ActualValue float64 `json:"actual_value,omitempty"`
	Threshold   float64 `json:"threshold,omitempty"`
}

// SerialClarity describes a serial-bearing photo
type SerialClarity struct {
	Present bool
	Clear   bool
}

// Tier maps a byte size to a quality tier
func (qv *QualityValidator) Tier(size int64) models.QualityTier {
	switch {
	case size < qv.thresholds.MinUsableBytes:
		return models.QualityPoor
	case size < qv.thresholds.MinGoodBytes:
		return models.QualityFair
	default:
		return models.QualityGood
	}
}

// AssessSerialClarity reports presence and clarity for photos of a serial-bearing view
func (qv *QualityValidator) AssessSerialClarity(img models.UploadedImage, view models.ViewLabel) SerialClarity {
	if !view.SerialBearing() {
		return SerialClarity{}
	}
	return SerialClarity{
		Present: true,
		Clear:   img.Size >= qv.thresholds.MinSerialClearBytes,
	}
}

// Validate returns the quality issues of one image. view is empty for unclassified images.
// A low-quality image gets a single error; the unclear-serial warning only applies to
// images that passed the usable threshold.
func (qv *QualityValidator) Validate(img models.UploadedImage, view models.ViewLabel) []QualityIssue {
	var issues []QualityIssue

	if img.Size < qv.thresholds.MinUsableBytes {
		issues = append(issues, QualityIssue{
			Type:        "low_quality",
			Message:     fmt.Sprintf("Low-quality image: %s", img.Filename),
			Severity:    "error",
			ActualValue: float64(img.Size),
			Threshold:   float64(qv.thresholds.MinUsableBytes),
		})
		return issues
	}

	if clarity := qv.AssessSerialClarity(img, view); clarity.Present && !clarity.Clear {
		issues = append(issues, QualityIssue{
			Type:        "serial_unclear",
			Message:     fmt.Sprintf("Serial/date code image present but unclear: %s", img.Filename),
			Severity:    "warning",
			ActualValue: float64(img.Size),
			Threshold:   float64(qv.thresholds.MinSerialClearBytes),
		})
	}

	return issues
}

// ConvertIssuesToMessages converts quality issues to red flag messages
func (qv *QualityValidator) ConvertIssuesToMessages(issues []QualityIssue) []string {
	var messages []string
	for _, issue := range issues {
		messages = append(messages, issue.Message)
	}
	return messages
}

// HasCriticalIssues checks if there are any critical (error severity) issues
func (qv *QualityValidator) HasCriticalIssues(issues []QualityIssue) bool {
	for _, issue := range issues {
		if issue.Severity == "error" {
			return true
		}
	}
	return false
}
