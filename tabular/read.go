package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Read decodes r according to format.
func Read(r io.Reader, format Format) (*Table, error) {
	switch format {
	case FormatCSV:
		return ReadDelimited(r, ',')
	case FormatTSV:
		return ReadDelimited(r, '\t')
	case FormatXLSX:
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ReadFile decodes the file at path, choosing the format by extension.
func ReadFile(path string) (*Table, error) {
	format, err := FormatFromName(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	return Read(f, format)
}

// ReadDelimited decodes comma- or tab-separated text.
// Rows may have differing field counts. encoding/csv folds a \r\n inside a
// quoted field to \n; every other byte of a data cell is kept.
func ReadDelimited(r io.Reader, comma rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read delimited: %w", err)
	}
	return newTable(records)
}

// ReadXLSX decodes the first worksheet of an Excel workbook.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyTable
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return newTable(records)
}
