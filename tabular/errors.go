package tabular

import "errors"

var (
	// ErrUnsupportedFormat indicates a file type that cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyTable indicates input without a header row.
	ErrEmptyTable = errors.New("empty table")
)
