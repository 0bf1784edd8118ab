package index

import "errors"

var (
	// ErrDimensionMismatch indicates vectors of differing lengths.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmptyDataset indicates an index was requested over no vectors.
	ErrEmptyDataset = errors.New("empty dataset")
)
