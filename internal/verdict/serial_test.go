package verdict

import (
	"context"
	"testing"

	"github.com/bagcheck/authenticity-api/pkg/models"
)

type fakeExtractor struct {
	text  string
	calls int
	seen  [][]byte
}

func (f *fakeExtractor) ExtractText(_ context.Context, image []byte) string {
	f.calls++
	f.seen = append(f.seen, image)
	return f.text
}

func TestNormalizeSerial(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sd1234", "SD1234"},
		{" SD 12-34\n", "SD1234"},
		{"21.456.789", "21456789"},
		{"***", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeSerial(tt.in); got != tt.want {
			t.Errorf("NormalizeSerial(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeSerialIsIdempotent(t *testing.T) {
	for _, s := range []string{"SD1234", "21456789", "AB12CD34"} {
		if got := NormalizeSerial(NormalizeSerial(s)); got != s {
			t.Errorf("NormalizeSerial(NormalizeSerial(%q)) = %q", s, got)
		}
	}
}

func TestExtractSerial(t *testing.T) {
	candidate := &models.UploadedImage{Filename: "serial.jpg", Size: 100000, Content: []byte("img")}

	tests := []struct {
		name          string
		candidate     *models.UploadedImage
		present       bool
		ocrText       string
		wantText      string
		wantReason    string
		wantCalls     int
		wantAttempted bool
	}{
		{
			name:       "no serial photo",
			wantReason: "No serial/date code photo observed",
		},
		{
			name:       "present but not clear",
			present:    true,
			wantReason: "Serial/date code visible but unreadable",
		},
		{
			name:          "ocr reads text",
			candidate:     candidate,
			present:       true,
			ocrText:       "sd 1234",
			wantText:      "SD1234",
			wantReason:    "Serial/date code text extracted: SD1234",
			wantCalls:     1,
			wantAttempted: true,
		},
		{
			name:          "ocr returns nothing",
			candidate:     candidate,
			present:       true,
			ocrText:       "  ",
			wantReason:    "Serial/date code visible but unreadable",
			wantCalls:     1,
			wantAttempted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeExtractor{text: tt.ocrText}
			got := extractSerial(context.Background(), fake, tt.candidate, tt.present)
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
			if got.Attempted != tt.wantAttempted {
				t.Errorf("Attempted = %v, want %v", got.Attempted, tt.wantAttempted)
			}
			if fake.calls != tt.wantCalls {
				t.Errorf("extractor called %d times, want %d", fake.calls, tt.wantCalls)
			}
		})
	}
}

func TestExtractSerialWithoutExtractor(t *testing.T) {
	candidate := &models.UploadedImage{Filename: "serial.jpg", Size: 100000}
	got := extractSerial(context.Background(), nil, candidate, true)
	if got.Reason != "Serial/date code visible but unreadable" || got.Attempted {
		t.Errorf("extractSerial() = %+v, want unreadable and not attempted", got)
	}
}
