package mock

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"sync/atomic"
	"unicode"
)

// DefaultDimension is the vector length produced by NewMockEmbedder.
const DefaultDimension = 384

// MockEmbedder is a deterministic ai.Embedder.
// It allows custom behavior injection via function fields.
type MockEmbedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc is called by EmbedTexts if set.
	// If nil, uses default deterministic behavior.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	dim       int
	callCount atomic.Int64
}

// NewMockEmbedder creates a mock embedder with default deterministic behavior
// and DefaultDimension-length vectors.
func NewMockEmbedder() *MockEmbedder {
	return NewHashEmbedder(DefaultDimension)
}

// NewHashEmbedder creates an embedder that maps text to a unit vector by
// feature hashing its lowercase word tokens. Texts sharing words have a
// positive inner product; identical texts produce identical vectors.
// Non-positive dim falls back to DefaultDimension.
func NewHashEmbedder(dim int) *MockEmbedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &MockEmbedder{dim: dim}
}

// Dimension returns the length of generated vectors.
func (m *MockEmbedder) Dimension() int {
	return m.dim
}

// EmbedText generates a deterministic embedding for text.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount.Add(1)

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return HashVector(text, m.dim), nil
}

// EmbedTexts generates deterministic embeddings for multiple texts.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount.Add(1)

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = HashVector(text, m.dim)
	}
	return embeddings, nil
}

// CallCount returns the number of times any method was called.
func (m *MockEmbedder) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and any injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount.Store(0)
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// HashVector returns the unit-length feature-hash vector of text.
// Text without word tokens maps to the zero vector.
func HashVector(text string, dim int) []float32 {
	vector := make([]float32, dim)
	for _, token := range tokenize(text) {
		h := fnv.New64a()
		h.Write([]byte(token))
		sum := h.Sum64()

		idx := int(sum % uint64(dim))
		if sum&(1<<63) != 0 {
			vector[idx]--
		} else {
			vector[idx]++
		}
	}

	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return vector
	}
	inv := 1 / math.Sqrt(sumSquares)
	for i := range vector {
		vector[i] = float32(float64(vector[i]) * inv)
	}
	return vector
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
