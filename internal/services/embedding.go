package services

import (
	"fmt"

	"github.com/tenxdevs/hymns-backend/internal/types"
)

// EmbeddingProvider turns free text into a fixed-dimensionality vector.
// Swappable per environment: the deterministic stub below for development and
// tests, a real model client in production.
type EmbeddingProvider interface {
	Embed(text string) ([]float32, error)
}

type mockEmbeddingProvider struct {
	dim int
}

// NewMockEmbeddingProvider returns a provider that derives a pseudo-random
// vector deterministically from the input text. The same text always maps to
// the same vector, which keeps similarity results stable across calls.
func NewMockEmbeddingProvider() EmbeddingProvider {
	return &mockEmbeddingProvider{dim: types.EmbeddingDim}
}

func (p *mockEmbeddingProvider) Embed(text string) ([]float32, error) {
	if p.dim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", p.dim)
	}

	var seed uint32
	for _, r := range text {
		seed += uint32(r)
	}
	state := seed
	if state == 0 {
		state = 1
	}

	// Numerical Recipes LCG; uint32 arithmetic is the mod 2^32.
	vec := make([]float32, p.dim)
	for i := range vec {
		state = state*1664525 + 1013904223
		vec[i] = float32(float64(state)/float64(1<<32)*2 - 1)
	}
	return vec, nil
}
