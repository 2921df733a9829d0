package embedding

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
)

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func TestHashService_Generate(t *testing.T) {
	s := NewHashService(64)
	ctx := context.Background()

	v, err := s.Generate(ctx, "The caller wants to book a demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 64 {
		t.Fatalf("expected 64 dimensions, got %d", len(v))
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if math.Abs(norm-1) > 1e-5 {
		t.Errorf("expected unit vector, got norm %v", norm)
	}

	again, _ := s.Generate(ctx, "the CALLER wants to book a demo!")
	if cosine(v, again) < 0.999 {
		t.Error("expected case and punctuation to be ignored")
	}
}

func TestHashService_Similarity(t *testing.T) {
	s := NewHashService(DefaultDimensions)
	ctx := context.Background()

	query, _ := s.Generate(ctx, "customer asked about pricing plans")
	related, _ := s.Generate(ctx, "the customer asked about our pricing plans and discounts")
	unrelated, _ := s.Generate(ctx, "weather forecast shows heavy rain tomorrow")

	if cosine(query, related) <= cosine(query, unrelated) {
		t.Errorf("expected related text to score higher: related=%v unrelated=%v",
			cosine(query, related), cosine(query, unrelated))
	}
}

func TestHashService_EmptyText(t *testing.T) {
	s := NewHashService(0)
	if s.Dimensions() != DefaultDimensions {
		t.Errorf("expected default dimensions, got %d", s.Dimensions())
	}
	for _, text := range []string{"", "   ", "?!."} {
		if _, err := s.Generate(context.Background(), text); !errors.Is(err, ErrEmptyText) {
			t.Errorf("Generate(%q): expected ErrEmptyText, got %v", text, err)
		}
	}
}

func TestHashService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewHashService(8).Generate(ctx, "hello"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNew_WithoutAPIKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := New(context.Background(), Config{}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(*HashService); !ok {
		t.Errorf("expected HashService, got %T", s)
	}
	if s.Dimensions() != DefaultDimensions {
		t.Errorf("expected %d dimensions, got %d", DefaultDimensions, s.Dimensions())
	}
}

func TestGeminiService_EmptyText(t *testing.T) {
	s := &GeminiService{dims: 8}
	if _, err := s.Generate(context.Background(), " "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}
