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

import "errors"

var (
	// ErrSchema indicates that required dataset columns are missing.
	ErrSchema = errors.New("schema error")

	// ErrEmbedding indicates that the embedding step failed or returned malformed output.
	ErrEmbedding = errors.New("embedding error")

	// ErrNotFound indicates an unknown or evicted dataset.
	ErrNotFound = errors.New("dataset not found")

	// ErrInvalidRecord indicates an Employee failed validation.
	ErrInvalidRecord = errors.New("invalid employee record")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("employee name cannot be empty")

	// ErrInvalidAge indicates the age field is not an integer.
	ErrInvalidAge = errors.New("employee age must be an integer")
)
