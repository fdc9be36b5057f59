package curator

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const systemInstruction = "Você é o Alex, curador virtual da MONTFLIX. Seu tom é amigável, técnico e apaixonado por cinema."

// GeminiConfig configures the Gemini recommender. BaseURL overrides the
// API endpoint and is empty in production.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Gemini is a Recommender backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds the recommender. Without an API key it is returned
// unconfigured and every Recommend call fails with ErrNotConfigured.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	g := &Gemini{model: cfg.Model}
	if cfg.APIKey == "" {
		return g, nil
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *Gemini) Configured() bool {
	return g.client != nil
}

func (g *Gemini) Recommend(ctx context.Context, req Request) (string, error) {
	if g.client == nil {
		return "", ErrNotConfigured
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(req)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.8),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Text(), nil
}
