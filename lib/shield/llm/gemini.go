package llm

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

//go:generate moq --out mocks/gemini_client.go --pkg mocks --with-resets --skip-ensure . GeminiClient

// GeminiClient is a subset of genai.Models used by the backend
type GeminiClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig contains parameters of the Gemini backend
type GeminiConfig struct {
	Model           string // model name, gemini-2.0-flash if empty
	MaxOutputTokens int32  // response limit, 256 if not set
}

// Gemini is a Backend for Google Gemini api
type Gemini struct {
	client GeminiClient
	params GeminiConfig
}

// NewGeminiClient makes genai client for the Gemini api with the given key
func NewGeminiClient(ctx context.Context, apiKey string) (GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

// NewGemini makes a Gemini backend with defaults applied
func NewGemini(client GeminiClient, params GeminiConfig) *Gemini {
	if params.Model == "" {
		params.Model = "gemini-2.0-flash"
	}
	if params.MaxOutputTokens == 0 {
		params.MaxOutputTokens = 256
	}
	return &Gemini{client: client, params: params}
}

// Complete asks the model for a json answer
func (g *Gemini) Complete(ctx context.Context, system, text string) (string, error) {
	resp, err := g.client.GenerateContent(ctx, g.params.Model, genai.Text(text), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		ResponseMIMEType:  "application/json",
		MaxOutputTokens:   g.params.MaxOutputTokens,
		Temperature:       genai.Ptr[float32](0),
	})
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("empty response")
	}
	return resp.Text(), nil
}
