package brain

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/neelspatel02/BeautifyBot/internal/core/ports"
)

// GeminiBrain is the alternative reformatter, used when GEMINI_API_KEY is
// configured instead of a Groq key.
type GeminiBrain struct {
	Client      *genai.Client
	Model       string
	MaxTokens   int32
	Temperature float32
}

func NewGeminiBrain(ctx context.Context, apiKey, model string, maxTokens int, temperature float64) (*GeminiBrain, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}

	return &GeminiBrain{
		Client:      client,
		Model:       model,
		MaxTokens:   int32(maxTokens),
		Temperature: float32(temperature),
	}, nil
}

var _ ports.Brain = (*GeminiBrain)(nil)

func (b *GeminiBrain) Beautify(ctx context.Context, text string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		MaxOutputTokens:   b.MaxTokens,
		Temperature:       genai.Ptr(b.Temperature),
	}

	result, err := b.Client.Models.GenerateContent(ctx, b.Model,
		genai.Text(userPromptPrefix+text), config)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	out := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if out == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return out, nil
}
