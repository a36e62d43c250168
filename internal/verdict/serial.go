package verdict

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/bagcheck/authenticity-api/pkg/models"
)

// TextExtractor reads free-form text from image bytes. An empty string means
// nothing was read; implementations absorb their own failures and timeouts.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) string
}

const (
	reasonSerialUnreadable = "Serial/date code visible but unreadable"
	reasonSerialMissing    = "No serial/date code photo observed"
)

// NormalizeSerial keeps letters and digits and uppercases them
func NormalizeSerial(raw string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, raw))
}

// serialOutcome is the result of the single extraction attempt of a request
type serialOutcome struct {
	Text      string
	Reason    string
	Attempted bool
}

// extractSerial reads the candidate, if any, and reports exactly one reason.
// present is true when any serial-bearing photo was uploaded.
func extractSerial(ctx context.Context, extractor TextExtractor, candidate *models.UploadedImage, present bool) serialOutcome {
	if candidate == nil {
		if present {
			return serialOutcome{Reason: reasonSerialUnreadable}
		}
		return serialOutcome{Reason: reasonSerialMissing}
	}

	text := ""
	if extractor != nil {
		text = NormalizeSerial(extractor.ExtractText(ctx, candidate.Content))
	}
	if text == "" {
		return serialOutcome{Reason: reasonSerialUnreadable, Attempted: extractor != nil}
	}
	return serialOutcome{
		Text:      text,
		Reason:    fmt.Sprintf("Serial/date code text extracted: %s", text),
		Attempted: true,
	}
}
