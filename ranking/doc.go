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

// Package ranking turns a table of employee records into an immutable
// Dataset and ranks its records against free-text requirements.
//
// # Loading
//
// Engine.Load checks the header for the four required columns, validates
// every row into a core.Employee, embeds the role texts in batches on a
// worker pool and builds an index.Index over the unit-normalized vectors.
// A Load either returns a complete Dataset or an error; no partial dataset
// is ever visible.
//
// # Querying
//
// Engine.Query runs a fixed pipeline:
//
//  1. Embed and normalize the query text.
//  2. Retrieve the raw candidate pool (20 hits by default).
//  3. Drop records missing any required skill or outside the age range.
//  4. Score survivors: 0.5·similarity + 0.3·skill ratio + 0.2·age score.
//  5. Sort by score, ties by load order, and keep the top K.
//
// A Monitor passed to QueryWithMonitor observes every stage.
//
// # Concurrency
//
// Datasets are read-only after Load and may be queried from many goroutines.
// An Engine can run several Loads at once; they share its worker pool.
package ranking
