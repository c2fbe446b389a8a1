package services

import (
	"context"

	"google.golang.org/genai"
)

// LLMClient generates advisory text from a prompt. Implemented by
// GeminiClient in production and stubbed in tests.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient wraps the Gemini API for advisory generation.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey string, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
