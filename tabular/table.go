package tabular

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an input encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// FormatFromName infers the format from a file name's extension.
func FormatFromName(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Table is a decoded sheet. Rows may be shorter or longer than Header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell returns the value at row, col or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// newTable splits records into header and data rows. Header cells are
// cleaned with CleanCell; data cells are kept verbatim.
func newTable(records [][]string) (*Table, error) {
	var (
		header []string
		rows   [][]string
	)
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		if header == nil {
			header = make([]string, len(rec))
			for i, cell := range rec {
				header[i] = CleanCell(cell)
			}
			continue
		}
		rows = append(rows, rec)
	}
	if header == nil {
		return nil, ErrEmptyTable
	}
	return &Table{Header: header, Rows: rows}, nil
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff")) != "" {
			return false
		}
	}
	return true
}
