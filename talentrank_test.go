package talentrank

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/poiesic/talentrank/ai"
	"github.com/poiesic/talentrank/ai/mock"
	"github.com/poiesic/talentrank/config"
	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/ranking"
	"github.com/poiesic/talentrank/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Embedding.Provider = ai.ProviderHash
	cfg.Embedding.Dimension = 64
	cfg.Ranking.PoolSize = 2
	return cfg
}

func staffTable() *tabular.Table {
	return &tabular.Table{
		Header: ranking.RequiredColumns,
		Rows: [][]string{
			{"Alice", "python, sql", "30", "backend engineer"},
			{"Bob", "python, dbt, snowflake", "45", "analytics engineer using snowflake and dbt"},
			{"Carol", "java", "60", "backend engineer"},
		},
	}
}

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	svc, err := NewService(append([]ServiceOption{WithConfig(hashConfig())}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestNewEmbedder(t *testing.T) {
	e, err := NewEmbedder(ai.NewConfig(ai.WithProvider("hash"), ai.WithDimension(32)))
	require.NoError(t, err)
	v, err := e.EmbedText(context.Background(), "engineer")
	require.NoError(t, err)
	assert.Len(t, v, 32)

	e, err = NewEmbedder(ai.NewConfig())
	require.NoError(t, err)
	assert.NotNil(t, e)

	_, err = NewEmbedder(ai.NewConfig(ai.WithProvider("onnx")))
	assert.Error(t, err)
}

func TestNewService_InvalidConfig(t *testing.T) {
	cfg := hashConfig()
	cfg.Ranking.RawPoolSize = 0

	_, err := NewService(WithConfig(cfg))
	assert.Error(t, err)
}

func TestService_LoadAndSearch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.LoadDataset(ctx, staffTable())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	results, err := svc.Search(ctx, id, ranking.Query{
		Text:   "analytics engineer snowflake dbt",
		Skills: []string{"snowflake", "dbt"},
		AgeMin: 30,
		AgeMax: 50,
		TopK:   5,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bob", results[0].Name)

	infos := svc.Datasets()
	require.Len(t, infos, 1)
	assert.Equal(t, id, infos[0].ID)
	assert.Equal(t, 3, infos[0].Rows)
	assert.Equal(t, "hash/all-minilm/64", infos[0].Model)
}

func TestService_SearchErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Search(ctx, "missing", ranking.Query{TopK: 5, AgeMin: 16, AgeMax: 99})
	assert.ErrorIs(t, err, core.ErrNotFound)

	id, err := svc.LoadDataset(ctx, staffTable())
	require.NoError(t, err)

	_, err = svc.Search(ctx, id, ranking.Query{TopK: 5, AgeMin: 50, AgeMax: 30})
	assert.ErrorIs(t, err, ranking.ErrInvalidQuery)

	_, err = svc.Search(ctx, id, ranking.Query{TopK: 0, AgeMin: 16, AgeMax: 99})
	assert.ErrorIs(t, err, ranking.ErrInvalidQuery)
}

func TestService_LoadErrors(t *testing.T) {
	svc := newTestService(t)

	table := staffTable()
	table.Header = []string{ranking.ColumnName, ranking.ColumnSkills, ranking.ColumnRoles}
	_, err := svc.LoadDataset(context.Background(), table)
	assert.ErrorIs(t, err, core.ErrSchema)
	assert.Empty(t, svc.Datasets(), "failed loads register nothing")
}

func TestService_Evict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.LoadDataset(ctx, staffTable())
	require.NoError(t, err)
	require.NoError(t, svc.Evict(id))

	_, err = svc.Search(ctx, id, ranking.Query{TopK: 1, AgeMin: 16, AgeMax: 99})
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, svc.Evict(id), core.ErrNotFound)
}

func TestService_CacheAvoidsReembedding(t *testing.T) {
	inner := mock.NewHashEmbedder(64)
	svc := newTestService(t, WithEmbedder(inner))
	ctx := context.Background()

	first, err := svc.LoadDataset(ctx, staffTable())
	require.NoError(t, err)
	calls := inner.CallCount()
	assert.Equal(t, 1, calls)

	second, err := svc.LoadDataset(ctx, staffTable())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, calls, inner.CallCount(), "identical role texts come from the cache")
}

func TestService_PersistentCache(t *testing.T) {
	cfg := hashConfig()
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")

	svc, err := NewService(WithConfig(cfg))
	require.NoError(t, err)
	_, err = svc.LoadDataset(context.Background(), staffTable())
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	inner := mock.NewHashEmbedder(64)
	svc, err = NewService(WithConfig(cfg), WithEmbedder(inner))
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.LoadDataset(context.Background(), staffTable())
	require.NoError(t, err)
	assert.Equal(t, 0, inner.CallCount())
}

func TestService_CacheDisabled(t *testing.T) {
	cfg := hashConfig()
	cfg.Cache.Enabled = false
	inner := mock.NewHashEmbedder(64)

	svc, err := NewService(WithConfig(cfg), WithEmbedder(inner))
	require.NoError(t, err)
	defer svc.Close()

	for i := 0; i < 2; i++ {
		_, err = svc.LoadDataset(context.Background(), staffTable())
		require.NoError(t, err)
	}
	assert.Equal(t, 2, inner.CallCount())
}
