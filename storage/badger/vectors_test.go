package badger

import (
	"context"
	"testing"

	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorCache_PutGet(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	a := core.IDFromContent("model|backend engineer")
	b := core.IDFromContent("model|analytics engineer")
	missing := core.IDFromContent("model|nobody")

	err = cache.PutVectors(ctx, map[core.ID][]float32{
		a: {0.6, 0.8},
		b: {1, 0},
	})
	require.NoError(t, err)

	got, err := cache.GetVectors(ctx, a, b, missing)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, []float32{0.6, 0.8}, got[a])
	assert.Equal(t, []float32{1, 0}, got[b])
	_, ok := got[missing]
	assert.False(t, ok)
}

func TestVectorCache_Overwrite(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	id := core.ID(7)
	require.NoError(t, cache.PutVectors(ctx, map[core.ID][]float32{id: {1, 0}}))
	require.NoError(t, cache.PutVectors(ctx, map[core.ID][]float32{id: {0, 1}}))

	got, err := cache.GetVectors(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, got[id])
}

func TestVectorCache_PutEmpty(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()

	assert.NoError(t, cache.PutVectors(context.Background(), nil))
}

func TestVectorCache_Closed(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	require.NoError(t, cache.Close())

	_, err = cache.GetVectors(context.Background(), core.ID(1))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = cache.PutVectors(context.Background(), map[core.ID][]float32{1: {1}})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	assert.NoError(t, cache.Close(), "second close is a no-op")
}

func TestNewVectorCache_SharedBackend(t *testing.T) {
	backend, err := OpenBackend("", true, nil)
	require.NoError(t, err)
	defer backend.Close()

	cache, err := NewVectorCache(backend)
	require.NoError(t, err)
	require.NoError(t, cache.Close())

	assert.False(t, backend.IsClosed(), "cache must not close a borrowed backend")

	_, err = NewVectorCache(nil)
	assert.Error(t, err)
}

func TestVectorCache_Persists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cache, err := OpenVectorCache(dir, false, nil)
	require.NoError(t, err)
	require.NoError(t, cache.PutVectors(ctx, map[core.ID][]float32{42: {0.5, 0.5}}))
	require.NoError(t, cache.Close())

	reopened, err := OpenVectorCache(dir, false, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetVectors(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5}, got[42])
}

func TestMakeVectorKey(t *testing.T) {
	key := makeVectorKey(core.ID(1))
	assert.Equal(t, "vec:", string(key[:4]))
	assert.Len(t, key, 12)
}
