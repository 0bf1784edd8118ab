package ranking

import (
	"time"

	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/index"
)

// Dataset is a loaded, immutable collection of employees and their index.
type Dataset struct {
	employees []core.Employee
	index     *index.Index
	modelID   string
	createdAt time.Time
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.employees)
}

// Dim returns the embedding dimensionality.
func (d *Dataset) Dim() int {
	return d.index.Dim()
}

// ModelID identifies the embedder that produced the vectors.
func (d *Dataset) ModelID() string {
	return d.modelID
}

// CreatedAt returns when the dataset finished loading.
func (d *Dataset) CreatedAt() time.Time {
	return d.createdAt
}

// Employee returns the record at position. The returned value shares the
// record's skill set and vector, which must not be modified.
func (d *Dataset) Employee(position int) (core.Employee, bool) {
	if position < 0 || position >= len(d.employees) {
		return core.Employee{}, false
	}
	return d.employees[position], true
}
