package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Alice", "Alice"},
		{"whitespace", "  Bob \t", "Bob"},
		{"bom", "\ufeffEmployee Name", "Employee Name"},
		{"fullwidth digits", "３０", "30"},
		{"control characters", "a\x00b\x07c", "abc"},
		{"inner newline kept", "line one\nline two", "line one\nline two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCell(tt.in))
		})
	}
}

func TestFormatFromName(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"staff.csv", FormatCSV, false},
		{"STAFF.TSV", FormatTSV, false},
		{"staff.xlsx", FormatXLSX, false},
		{"staff.xls", "", true},
		{"staff.pdf", "", true},
		{"staff", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFromName(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadDelimited_CSV(t *testing.T) {
	input := "\ufeffEmployee Name,Employee Skills,Employee Age\n" +
		"Alice,\"Python, SQL\",30\n" +
		",,\n" +
		"Bob,dbt,45,extra\n"

	table, err := Read(strings.NewReader(input), FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, []string{"Employee Name", "Employee Skills", "Employee Age"}, table.Header)
	require.Equal(t, 2, table.Len(), "blank rows are skipped")
	assert.Equal(t, "Python, SQL", table.Cell(0, 1))
	assert.Equal(t, "extra", table.Cell(1, 3))
	assert.Equal(t, "", table.Cell(1, 9))
	assert.Equal(t, "", table.Cell(5, 0))
}

func TestReadDelimited_DataCellsVerbatim(t *testing.T) {
	role := "  \ufb01nance \uff22\uff29 lead\nline2 "
	input := "\ufeff Employee Name ,Employee Roles & Responsibilities\n" +
		"\" Alice \",\"" + role + "\"\n"

	table, err := Read(strings.NewReader(input), FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, []string{"Employee Name", "Employee Roles & Responsibilities"}, table.Header)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, " Alice ", table.Cell(0, 0))
	assert.Equal(t, role, table.Cell(0, 1))
}

func TestReadDelimited_TSV(t *testing.T) {
	input := "Employee Name\tEmployee Age\nCarol\t60\n"

	table, err := Read(strings.NewReader(input), FormatTSV)
	require.NoError(t, err)
	assert.Equal(t, []string{"Employee Name", "Employee Age"}, table.Header)
	assert.Equal(t, "60", table.Cell(0, 1))
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""), FormatCSV)
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = Read(strings.NewReader("\n\n"), FormatCSV)
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestRead_HeaderOnly(t *testing.T) {
	table, err := Read(strings.NewReader("Employee Name,Employee Age\n"), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestRead_UnknownFormat(t *testing.T) {
	_, err := Read(strings.NewReader("x"), Format("ods"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Employee Name", "Employee Age", "Employee Skills"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{" Alice ", 30, "python, sql"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"Bob", 45, "dbt"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := Read(buf, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, []string{"Employee Name", "Employee Age", "Employee Skills"}, table.Header)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, " Alice ", table.Cell(0, 0))
	assert.Equal(t, "30", table.Cell(0, 1))
	assert.Equal(t, "Bob", table.Cell(1, 0))
}

func TestReadXLSX_Corrupt(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("not a zip archive"))
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "staff.csv")
	require.NoError(t, os.WriteFile(path, []byte("Employee Name\nAlice\n"), 0644))

	table, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Alice", table.Cell(0, 0))

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	_, err = ReadFile(filepath.Join(dir, "staff.xls"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
