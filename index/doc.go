// Package index provides exact nearest-neighbour search over a fixed set of
// embedding vectors.
//
// An Index is built once from vectors keyed by their 0-based position and
// never changes afterwards. Scores are raw inner products, which equal cosine
// similarity when both the stored and query vectors are unit length.
//
//	idx, err := index.Build(vectors)
//	if err != nil {
//	    return err
//	}
//	hits, err := idx.Query(queryVector, 20)
//
// An Index is read-only and safe for concurrent queries without locking.
package index
