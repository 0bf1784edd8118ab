package tabular

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanCell normalizes a raw cell value.
func CleanCell(v string) string {
	v = strings.TrimPrefix(strings.TrimSpace(v), "\ufeff")
	v = norm.NFKC.String(v)
	v = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, v)
	return strings.TrimSpace(v)
}
