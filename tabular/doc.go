// Package tabular decodes spreadsheet uploads into a header row plus data
// rows of string cells.
//
// Supported formats are CSV, TSV and XLSX (first worksheet). Header cells
// are cleaned with CleanCell: Unicode NFKC normalization, trimming, removal
// of a leading byte order mark and of control characters other than tab and
// newline. Data cells are returned as decoded, so names and free text reach
// callers unchanged. Rows with no non-blank cell are skipped.
package tabular
