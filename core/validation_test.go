package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmployee(t *testing.T) {
	tests := []struct {
		name     string
		employee *Employee
		wantErr  error
	}{
		{
			name:     "valid employee",
			employee: &Employee{Name: "Alice", Age: 30, Roles: "backend engineer"},
		},
		{
			name:     "empty roles are allowed",
			employee: &Employee{Name: "Bob", Age: 45},
		},
		{
			name:     "negative age is not range-checked",
			employee: &Employee{Name: "Carol", Age: -1},
		},
		{
			name:     "empty name",
			employee: &Employee{Name: "  ", Age: 30},
			wantErr:  ErrEmptyName,
		},
		{
			name:     "nil employee",
			employee: nil,
			wantErr:  ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmployee(tt.employee)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		cell    string
		want    int
		wantErr bool
	}{
		{cell: "42", want: 42},
		{cell: " 30 ", want: 30},
		{cell: "45.0", want: 45},
		{cell: "45.5", wantErr: true},
		{cell: "", wantErr: true},
		{cell: "forty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, err := ParseAge(tt.cell)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAge)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
