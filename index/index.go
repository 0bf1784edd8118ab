package index

import (
	"fmt"
	"slices"
)

// Hit is a single query result.
type Hit struct {
	Position int
	Score    float64
}

// Index is an exact inner-product index over fixed-dimension vectors.
type Index struct {
	dim  int
	data []float32 // row-major, Len()*dim values
}

// Build creates an index over vectors. Position i refers to vectors[i].
// The vectors are copied.
func Build(vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyDataset
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: vector 0 is empty", ErrDimensionMismatch)
	}

	data := make([]float32, 0, dim*len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has length %d, want %d", ErrDimensionMismatch, i, len(v), dim)
		}
		data = append(data, v...)
	}

	return &Index{dim: dim, data: data}, nil
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	return len(idx.data) / idx.dim
}

// Dim returns the vector dimensionality.
func (idx *Index) Dim() int {
	return idx.dim
}

// Vector returns a copy of the vector stored at position.
func (idx *Index) Vector(position int) []float32 {
	return slices.Clone(idx.data[position*idx.dim : (position+1)*idx.dim])
}

// Query returns the n highest-scoring positions for vector, ordered by
// descending inner product with ties broken by lower position.
// The result has min(n, Len()) entries; n <= 0 yields an empty result.
func (idx *Index) Query(vector []float32, n int) ([]Hit, error) {
	if len(vector) != idx.dim {
		return nil, fmt.Errorf("%w: query has length %d, want %d", ErrDimensionMismatch, len(vector), idx.dim)
	}
	if n <= 0 {
		return []Hit{}, nil
	}

	hits := make([]Hit, idx.Len())
	for pos := range hits {
		row := idx.data[pos*idx.dim : (pos+1)*idx.dim]
		var score float64
		for i, x := range row {
			score += float64(x) * float64(vector[i])
		}
		hits[pos] = Hit{Position: pos, Score: score}
	}

	slices.SortFunc(hits, compareHits)
	if n < len(hits) {
		hits = hits[:n]
	}
	return hits, nil
}

func compareHits(a, b Hit) int {
	switch {
	case a.Score > b.Score:
		return -1
	case a.Score < b.Score:
		return 1
	default:
		return a.Position - b.Position
	}
}
