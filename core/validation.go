// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateEmployee validates an Employee according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//
// NOT validated:
//   - Age range (any integer is accepted at load time)
//   - Roles (empty text still encodes to a vector)
//   - Vector (populated after validation by the embedding step)
func ValidateEmployee(e *Employee) error {
	if e == nil {
		return fmt.Errorf("%w: employee is nil", ErrInvalidRecord)
	}

	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyName)
	}

	return nil
}

// ParseAge parses an age cell. Spreadsheet exports often render integers
// as "42.0", so a zero fractional part is accepted.
func ParseAge(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if age, err := strconv.Atoi(cell); err == nil {
		return age, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAge, cell)
	}
	return int(f), nil
}
