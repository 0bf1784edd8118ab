package openai

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/poiesic/talentrank/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/embeddings"
)

type recordingClient struct {
	mu      sync.Mutex
	batches [][]string
	err     error
	drop    bool
}

func (c *recordingClient) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	c.mu.Lock()
	c.batches = append(c.batches, append([]string(nil), texts...))
	c.mu.Unlock()

	if c.err != nil {
		return nil, c.err
	}
	n := len(texts)
	if c.drop {
		n--
	}
	out := make([][]float32, n)
	for i := range out {
		out[i] = []float32{float32(len(texts[i])), 1}
	}
	return out, nil
}

func testConfig(batch int) *ai.Config {
	return ai.NewConfig(ai.WithBatchSize(batch))
}

func TestEmbedTexts_BatchesAndPreservesOrder(t *testing.T) {
	client := &recordingClient{}
	e, err := newEmbedder(testConfig(2), client)
	require.NoError(t, err)

	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	vectors, err := e.EmbedTexts(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, 5)
	for i, v := range vectors {
		assert.Equal(t, float32(len(texts[i])), v[0])
	}
	assert.Len(t, client.batches, 3)
}

func TestEmbedTexts_DoesNotMutateInput(t *testing.T) {
	client := &recordingClient{}
	e, err := newEmbedder(testConfig(8), client)
	require.NoError(t, err)

	texts := []string{"line one\nline two"}
	_, err = e.EmbedTexts(context.Background(), texts)
	require.NoError(t, err)

	assert.Equal(t, "line one\nline two", texts[0])
	assert.Equal(t, "line one line two", client.batches[0][0])
}

func TestEmbedTexts_Empty(t *testing.T) {
	client := &recordingClient{}
	e, err := newEmbedder(testConfig(8), client)
	require.NoError(t, err)

	vectors, err := e.EmbedTexts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
	assert.Empty(t, client.batches)
}

func TestEmbedTexts_ClientError(t *testing.T) {
	boom := errors.New("connection refused")
	e, err := newEmbedder(testConfig(8), &recordingClient{err: boom})
	require.NoError(t, err)

	_, err = e.EmbedTexts(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, boom)

	_, err = e.EmbedText(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}

func TestEmbedTexts_WrongCount(t *testing.T) {
	e, err := newEmbedder(testConfig(8), &recordingClient{drop: true})
	require.NoError(t, err)

	_, err = e.EmbedTexts(context.Background(), []string{"x", "y"})
	assert.ErrorIs(t, err, ai.ErrVectorCount)
}

func TestEmbedText(t *testing.T) {
	e, err := newEmbedder(testConfig(8), embeddings.EmbedderClientFunc(
		func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{0.6, 0.8}}, nil
		}))
	require.NoError(t, err)

	v, err := e.EmbedText(context.Background(), "backend engineer")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.6, 0.8}, v)
}

func TestNewEmbedder_InvalidConfig(t *testing.T) {
	_, err := NewEmbedder(ai.NewConfig(ai.WithEmbeddingModel("")))
	assert.Error(t, err)
}
