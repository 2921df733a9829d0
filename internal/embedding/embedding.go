package embedding

import (
	"context"
	"errors"
	"log/slog"
)

const DefaultDimensions = 384

var ErrEmptyText = errors.New("text to embed is empty")

type Service interface {
	Generate(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

type Config struct {
	APIKey     string
	Model      string
	Dimensions int
}

// New returns a Gemini-backed service when an API key is configured and the
// local hashing embedder otherwise.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (Service, error) {
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = DefaultDimensions
	}
	if cfg.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, using local hashing embedder")
		return NewHashService(cfg.Dimensions), nil
	}
	return NewGeminiService(ctx, cfg)
}
