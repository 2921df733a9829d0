package embedding

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultModel = "text-embedding-004"

type GeminiService struct {
	client *genai.Client
	model  string
	dims   int
}

func NewGeminiService(ctx context.Context, cfg Config) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	dims := cfg.Dimensions
	if dims <= 0 {
		dims = DefaultDimensions
	}

	return &GeminiService{client: client, model: model, dims: dims}, nil
}

func (s *GeminiService) Dimensions() int {
	return s.dims
}

func (s *GeminiService) Generate(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	resp, err := s.client.Models.EmbedContent(ctx, s.model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.EmbedContentConfig{OutputDimensionality: genai.Ptr(int32(s.dims))},
	)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("embed content: empty response")
	}

	values := resp.Embeddings[0].Values
	if len(values) != s.dims {
		return nil, fmt.Errorf("embed content: got %d dimensions, want %d", len(values), s.dims)
	}
	return values, nil
}
