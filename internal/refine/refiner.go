// Package refine wraps the language-model call that rewrites job
// description drafts.
package refine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextRefiner rewrites a draft into polished wording.
type TextRefiner interface {
	Refine(ctx context.Context, roleTitle, text string) (string, error)
}

// GeminiRefiner implements TextRefiner against the Gemini API.
type GeminiRefiner struct {
	client *genai.Client
	model  string
}

// NewGeminiRefiner constructs a refiner. The model name defaults to
// gemini-1.5-flash when empty.
func NewGeminiRefiner(ctx context.Context, apiKey, model string) (*GeminiRefiner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiRefiner{client: client, model: model}, nil
}

// Refine asks the model to rewrite the draft and returns plain text.
func (r *GeminiRefiner) Refine(ctx context.Context, roleTitle, text string) (string, error) {
	model := r.client.GenerativeModel(r.model)
	model.SetTemperature(0.2)

	prompt := buildPrompt(roleTitle, text)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return extractText(resp)
}

// Close releases the underlying client.
func (r *GeminiRefiner) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func buildPrompt(roleTitle, text string) string {
	var b strings.Builder
	b.WriteString("Rewrite the following job description so it is clear, specific and inclusive. ")
	b.WriteString("Keep every stated requirement; do not invent new ones. Return only the rewritten text.\n")
	if roleTitle != "" {
		fmt.Fprintf(&b, "Role: %s\n", roleTitle)
	}
	b.WriteString("\n")
	b.WriteString(text)
	return b.String()
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}
	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.TrimSpace(strings.Join(parts, "")), nil
}

var _ TextRefiner = (*GeminiRefiner)(nil)
