package index

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		vectors [][]float32
		wantErr error
	}{
		{"empty", nil, ErrEmptyDataset},
		{"zero-length vectors", [][]float32{{}}, ErrDimensionMismatch},
		{"mixed lengths", [][]float32{{1, 0}, {1, 0, 0}}, ErrDimensionMismatch},
		{"valid", [][]float32{{1, 0}, {0, 1}, {0.6, 0.8}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := Build(tt.vectors)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, idx)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.vectors), idx.Len())
			assert.Equal(t, 2, idx.Dim())
		})
	}
}

func TestBuild_CopiesInput(t *testing.T) {
	vectors := [][]float32{{1, 0}, {0, 1}}
	idx, err := Build(vectors)
	require.NoError(t, err)

	vectors[0][0] = -5
	assert.Equal(t, []float32{1, 0}, idx.Vector(0))

	v := idx.Vector(1)
	v[1] = 9
	assert.Equal(t, []float32{0, 1}, idx.Vector(1))
}

func TestQuery_OrderAndLength(t *testing.T) {
	idx, err := Build([][]float32{
		{0, 1},
		{1, 0},
		{0.6, 0.8},
	})
	require.NoError(t, err)

	hits, err := idx.Query([]float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, 1, hits[0].Position)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
	assert.Equal(t, 2, hits[1].Position)
	assert.InDelta(t, 0.6, hits[1].Score, 1e-6)

	all, err := idx.Query([]float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3, "n larger than Len returns everything")
}

func TestQuery_TiesBrokenByPosition(t *testing.T) {
	idx, err := Build([][]float32{
		{0, 1},
		{1, 0},
		{0, 1},
		{1, 0},
	})
	require.NoError(t, err)

	hits, err := idx.Query([]float32{1, 0}, 4)
	require.NoError(t, err)

	positions := make([]int, len(hits))
	for i, h := range hits {
		positions[i] = h.Position
	}
	assert.Equal(t, []int{1, 3, 0, 2}, positions)
}

func TestQuery_NonPositiveN(t *testing.T) {
	idx, err := Build([][]float32{{1}})
	require.NoError(t, err)

	for _, n := range []int{0, -3} {
		hits, err := idx.Query([]float32{1}, n)
		require.NoError(t, err)
		assert.NotNil(t, hits)
		assert.Empty(t, hits)
	}
}

func TestQuery_DimensionMismatch(t *testing.T) {
	idx, err := Build([][]float32{{1, 0}})
	require.NoError(t, err)

	_, err = idx.Query([]float32{1, 0, 0}, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestQuery_Concurrent(t *testing.T) {
	idx, err := Build([][]float32{{1, 0}, {0, 1}, {0.6, 0.8}})
	require.NoError(t, err)

	want, err := idx.Query([]float32{0, 1}, 3)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := idx.Query([]float32{0, 1}, 3)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
