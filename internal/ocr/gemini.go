package ocr

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiPrompt = "Read the serial number or date code stamped or printed in this photo of a handbag. " +
	"Reply with the code only. If no code is legible, reply NONE."

// Gemini reads text by asking a Gemini model to transcribe the code
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini client. Close must be called when done.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Gemini{client: cl, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

// Close releases the underlying client
func (g *Gemini) Close() error {
	return g.client.Close()
}

func (g *Gemini) ExtractText(ctx context.Context, image []byte) (string, error) {
	m := g.client.GenerativeModel(g.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}

	parts := []genai.Part{
		genai.Text(geminiPrompt),
		&genai.Blob{MIMEType: http.DetectContentType(image), Data: image},
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return parseGeminiAnswer(firstText(resp)), nil
}

func parseGeminiAnswer(answer string) string {
	answer = strings.TrimSpace(answer)
	if strings.EqualFold(answer, "NONE") {
		return ""
	}
	return answer
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
