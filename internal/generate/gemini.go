package generate

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiPrefix selects Google Gemini model ids.
const GeminiPrefix = "gemini-"

// GeminiAPI is the part of *genai.Models the adapter needs.
type GeminiAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Gemini struct {
	models GeminiAPI
	params Params
}

// NewGeminiClient connects to the Gemini API with apiKey.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("genai: %w", ErrMissingAPIKey)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return client, nil
}

func NewGemini(models GeminiAPI, p Params) *Gemini {
	return &Gemini{models: models, params: p}
}

// Register installs the gemini-* family on r.
func (g *Gemini) Register(r *Registry) {
	r.Register("gemini", Prefix(GeminiPrefix), g)
}

func (g *Gemini) Generate(ctx context.Context, modelID, prompt string) (string, error) {
	temp := float32(g.params.Temperature)
	resp, err := g.models.GenerateContent(ctx, modelID, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(g.params.MaxTokens),
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
