package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/storage"
)

// cachingEmbedder serves repeated texts from a storage.VectorCache.
type cachingEmbedder struct {
	inner   Embedder
	cache   storage.VectorCache
	modelID string
	logger  *slog.Logger
}

// NewCachingEmbedder wraps inner with a vector cache. Cache keys hash the
// model id together with the text, so caches can be shared across models.
// Cache failures are logged and fall through to inner.
func NewCachingEmbedder(inner Embedder, cache storage.VectorCache, modelID string) Embedder {
	return &cachingEmbedder{
		inner:   inner,
		cache:   cache,
		modelID: modelID,
		logger:  slog.Default().With("component", "caching-embedder"),
	}
}

// CacheKey returns the cache key for text embedded by modelID.
func CacheKey(modelID, text string) core.ID {
	return core.IDFromContent(modelID + "\x00" + text)
}

func (c *cachingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *cachingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	keys := make([]core.ID, len(texts))
	for i, text := range texts {
		keys[i] = CacheKey(c.modelID, text)
	}

	cached, err := c.cache.GetVectors(ctx, keys...)
	if err != nil {
		c.logger.Warn("cache lookup failed", "err", err)
		cached = nil
	}

	// Embed each distinct missing text once.
	var missTexts []string
	missIndex := make(map[core.ID]int)
	for i, key := range keys {
		if _, ok := cached[key]; ok {
			continue
		}
		if _, ok := missIndex[key]; ok {
			continue
		}
		missIndex[key] = len(missTexts)
		missTexts = append(missTexts, texts[i])
	}

	var fresh [][]float32
	if len(missTexts) > 0 {
		fresh, err = c.inner.EmbedTexts(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		if len(fresh) != len(missTexts) {
			return nil, fmt.Errorf("%w: want %d, got %d", ErrVectorCount, len(missTexts), len(fresh))
		}

		entries := make(map[core.ID][]float32, len(missIndex))
		for key, idx := range missIndex {
			entries[key] = fresh[idx]
		}
		if err := c.cache.PutVectors(ctx, entries); err != nil {
			c.logger.Warn("cache store failed", "err", err)
		}
	}

	c.logger.Debug("embedded texts", "count", len(texts), "hits", len(texts)-countMisses(keys, missIndex), "embedded", len(missTexts))

	out := make([][]float32, len(texts))
	for i, key := range keys {
		if idx, ok := missIndex[key]; ok {
			out[i] = fresh[idx]
		} else {
			out[i] = cached[key]
		}
	}
	return out, nil
}

func countMisses(keys []core.ID, missIndex map[core.ID]int) int {
	n := 0
	for _, key := range keys {
		if _, ok := missIndex[key]; ok {
			n++
		}
	}
	return n
}
