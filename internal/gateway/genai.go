// Package gateway implements the model backend boundary.
package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/resumecoach/server/internal/domain"
)

// GeminiGateway sends role-tagged message lists to the Gemini API and
// returns a single completion string.
type GeminiGateway struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a gateway for the given model. Every Complete call is
// bounded by timeout.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiGateway, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiGateway{client: client, model: model, timeout: timeout}, nil
}

// Complete maps system messages to the system instruction, replays the
// remaining turns in order, and returns the model's final text.
func (g *GeminiGateway) Complete(ctx context.Context, msgs []domain.ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var systemParts []string
	contents := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case domain.RoleSystem:
			systemParts = append(systemParts, m.Text)
		case domain.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: m.Text}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: m.Text}},
			})
		}
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		MaxOutputTokens: 1500,
	}
	if len(systemParts) > 0 {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: strings.Join(systemParts, "\n\n")}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}
