package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/talentrank/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEmbedder returns a vector derived from text length and records inputs.
type countingEmbedder struct {
	seen [][]string
	err  error
	drop bool
}

func (c *countingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	v, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return v[0], nil
}

func (c *countingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	c.seen = append(c.seen, texts)
	if c.err != nil {
		return nil, c.err
	}
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		out = append(out, []float32{float32(len(text)), 1})
	}
	if c.drop {
		out = out[1:]
	}
	return out, nil
}

func TestCachingEmbedder_ServesRepeatsFromCache(t *testing.T) {
	cache, err := badger.NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()

	inner := &countingEmbedder{}
	e := NewCachingEmbedder(inner, cache, "hash/test/2")
	ctx := context.Background()

	first, err := e.EmbedTexts(ctx, []string{"a", "bb", "a"})
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, first[0], first[2])
	require.Len(t, inner.seen, 1)
	assert.Equal(t, []string{"a", "bb"}, inner.seen[0], "duplicates embedded once")

	second, err := e.EmbedTexts(ctx, []string{"bb", "ccc", "a"})
	require.NoError(t, err)
	require.Len(t, inner.seen, 2)
	assert.Equal(t, []string{"ccc"}, inner.seen[1], "only misses reach the model")
	assert.Equal(t, first[1], second[0])
	assert.Equal(t, []float32{3, 1}, second[1])
	assert.Equal(t, first[0], second[2])
}

func TestCachingEmbedder_AllHits(t *testing.T) {
	cache, err := badger.NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()

	inner := &countingEmbedder{}
	e := NewCachingEmbedder(inner, cache, "m")
	ctx := context.Background()

	_, err = e.EmbedText(ctx, "backend")
	require.NoError(t, err)
	v, err := e.EmbedText(ctx, "backend")
	require.NoError(t, err)

	assert.Equal(t, []float32{7, 1}, v)
	assert.Len(t, inner.seen, 1)
}

func TestCachingEmbedder_ModelNamespacing(t *testing.T) {
	assert.NotEqual(t, CacheKey("model-a", "text"), CacheKey("model-b", "text"))
	assert.Equal(t, CacheKey("model-a", "text"), CacheKey("model-a", "text"))
}

func TestCachingEmbedder_InnerErrors(t *testing.T) {
	cache, err := badger.NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()

	boom := errors.New("boom")
	_, err = NewCachingEmbedder(&countingEmbedder{err: boom}, cache, "m").EmbedTexts(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, boom)

	_, err = NewCachingEmbedder(&countingEmbedder{drop: true}, cache, "m").EmbedTexts(context.Background(), []string{"x", "y"})
	assert.ErrorIs(t, err, ErrVectorCount)

	got, err := cache.GetVectors(context.Background(), CacheKey("m", "x"))
	require.NoError(t, err)
	assert.Empty(t, got, "failed calls are not cached")
}

func TestCachingEmbedder_ClosedCacheFallsThrough(t *testing.T) {
	cache, err := badger.NewMemoryVectorCache()
	require.NoError(t, err)
	require.NoError(t, cache.Close())

	inner := &countingEmbedder{}
	vectors, err := NewCachingEmbedder(inner, cache, "m").EmbedTexts(context.Background(), []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 1}}, vectors)
}

func TestCachingEmbedder_Empty(t *testing.T) {
	cache, err := badger.NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()

	vectors, err := NewCachingEmbedder(&countingEmbedder{}, cache, "m").EmbedTexts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}

