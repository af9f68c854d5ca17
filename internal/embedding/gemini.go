package embedding

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

type GeminiConfig struct {
	APIKey    string
	Model     string // default: text-embedding-004
	Dimension int
}

// Gemini embeds text through the Gemini API.
type Gemini struct {
	client    *genai.Client
	model     string
	dimension int
}

func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api_key is required for gemini")
	}
	model := cfg.Model
	if model == "" {
		model = "text-embedding-004"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{client: client, model: model, dimension: cfg.Dimension}, nil
}

func (g *Gemini) Embed(ctx context.Context, text string) ([]float64, error) {
	var embedCfg *genai.EmbedContentConfig
	if g.dimension > 0 {
		embedCfg = &genai.EmbedContentConfig{OutputDimensionality: genai.Ptr(int32(g.dimension))}
	}

	resp, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), embedCfg)
	if err != nil {
		return nil, unavailable("gemini", err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, unavailable("gemini", errors.New("empty embedding response"))
	}

	values := resp.Embeddings[0].Values
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out, nil
}
