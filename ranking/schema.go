package ranking

import (
	"strings"

	"github.com/poiesic/talentrank/tabular"
)

// Required column headers, in canonical order.
const (
	ColumnName   = "Employee Name"
	ColumnSkills = "Employee Skills"
	ColumnAge    = "Employee Age"
	ColumnRoles  = "Employee Roles & Responsibilities"
)

// RequiredColumns lists the headers every dataset must carry.
var RequiredColumns = []string{ColumnName, ColumnSkills, ColumnAge, ColumnRoles}

// columns holds header positions of the required columns.
type columns struct {
	name, skills, age, roles int
}

// resolveColumns locates the required columns in header. Matching ignores
// case and surrounding whitespace; the first matching header wins.
func resolveColumns(header []string) (columns, error) {
	found := make(map[string]int, len(RequiredColumns))
	for i, h := range header {
		key := strings.ToLower(tabular.CleanCell(h))
		if _, ok := found[key]; !ok {
			found[key] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		idx, ok := found[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return idx
	}

	cols := columns{
		name:   lookup(ColumnName),
		skills: lookup(ColumnSkills),
		age:    lookup(ColumnAge),
		roles:  lookup(ColumnRoles),
	}
	if len(missing) > 0 {
		return columns{}, &SchemaError{Missing: missing}
	}
	return cols, nil
}
