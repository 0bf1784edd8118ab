package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/storage"
)

// vectorCache implements storage.VectorCache on a Backend.
type vectorCache struct {
	backend     *Backend
	ownsBackend bool
	logger      *slog.Logger
}

var _ storage.VectorCache = (*vectorCache)(nil)

// NewVectorCache creates a vector cache on an existing backend.
// Closing the cache leaves the backend open.
func NewVectorCache(backend *Backend) (storage.VectorCache, error) {
	if backend == nil {
		return nil, errors.New("backend is nil")
	}
	return newVectorCache(backend, false), nil
}

// OpenVectorCache opens a backend at path and returns a cache that owns it.
func OpenVectorCache(path string, inMemory bool, logger *slog.Logger) (storage.VectorCache, error) {
	backend, err := OpenBackend(path, inMemory, logger)
	if err != nil {
		return nil, err
	}
	return newVectorCache(backend, true), nil
}

func newVectorCache(backend *Backend, owns bool) *vectorCache {
	return &vectorCache{
		backend:     backend,
		ownsBackend: owns,
		logger:      backend.logger.With("component", "vector-cache"),
	}
}

// GetVectors implements storage.VectorCache.
func (c *vectorCache) GetVectors(ctx context.Context, keys ...core.ID) (map[core.ID][]float32, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	found := make(map[core.ID][]float32, len(keys))
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range keys {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := tx.Get(makeVectorKey(id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			err = item.Value(func(val []byte) error {
				v, err := storage.UnmarshalVector(val)
				if err != nil {
					return err
				}
				found[id] = v
				return nil
			})
			if err != nil {
				return fmt.Errorf("decoding vector %d: %w", id, err)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("cache lookup", "requested", len(keys), "hits", len(found))
	return found, nil
}

// PutVectors implements storage.VectorCache.
func (c *vectorCache) PutVectors(ctx context.Context, entries map[core.ID][]float32) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if len(entries) == 0 {
		return nil
	}

	err := c.backend.WriteBatch(func(wb *badger.WriteBatch) error {
		for id, v := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := wb.Set(makeVectorKey(id), storage.MarshalVector(v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Debug("cache store", "count", len(entries))
	return nil
}

// Close implements storage.VectorCache.
func (c *vectorCache) Close() error {
	if !c.ownsBackend || c.backend.IsClosed() {
		return nil
	}
	return c.backend.Close()
}
