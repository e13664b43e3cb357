package brain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/neelspatel02/BeautifyBot/internal/core/ports"
)

const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqBrain reformats text through Groq's OpenAI-compatible chat completions
// API. Calls are not retried; failures propagate to the caller.
type GroqBrain struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	HTTPClient  *http.Client
}

func NewGroqBrain(apiKey, model string, maxTokens int, temperature float64) (*GroqBrain, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq api key is required")
	}
	return &GroqBrain{
		BaseURL:     DefaultGroqBaseURL,
		APIKey:      apiKey,
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		HTTPClient:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

var _ ports.Brain = (*GroqBrain)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (b *GroqBrain) Beautify(ctx context.Context, text string) (string, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model: b.Model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: userPromptPrefix + text},
		},
		MaxTokens:   b.MaxTokens,
		Temperature: b.Temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		b.BaseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+b.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("groq error %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("groq response decode failed: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	out := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return out, nil
}
