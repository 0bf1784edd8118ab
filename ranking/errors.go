package ranking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/poiesic/talentrank/core"
)

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidQuery indicates query parameters that cannot be evaluated.
	ErrInvalidQuery = errors.New("invalid query")
)

// SchemaError reports required columns absent from a table header.
type SchemaError struct {
	// Missing lists the absent columns in canonical order.
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", core.ErrSchema, strings.Join(e.Missing, ", "))
}

// Unwrap allows errors.Is(err, core.ErrSchema).
func (e *SchemaError) Unwrap() error {
	return core.ErrSchema
}

// RowError reports a malformed data row.
type RowError struct {
	// Row is the 1-based data row number, not counting the header.
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// newRowError wraps cause so the result matches core.ErrInvalidRecord.
func newRowError(row int, column string, cause error) *RowError {
	if !errors.Is(cause, core.ErrInvalidRecord) {
		cause = fmt.Errorf("%w: %w", core.ErrInvalidRecord, cause)
	}
	return &RowError{Row: row, Column: column, Err: cause}
}
