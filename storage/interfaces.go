package storage

import (
	"context"

	"github.com/poiesic/talentrank/core"
)

// VectorCache stores embedding vectors keyed by content ID.
type VectorCache interface {
	// GetVectors looks up the vectors for the given keys.
	// Keys without a cached vector are absent from the returned map.
	GetVectors(ctx context.Context, keys ...core.ID) (map[core.ID][]float32, error)

	// PutVectors stores the given vectors, replacing existing entries.
	PutVectors(ctx context.Context, entries map[core.ID][]float32) error

	// Close releases resources held by the cache.
	Close() error
}
