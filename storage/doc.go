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

// Package storage defines the persistence abstractions used by talentrank.
//
// Datasets themselves are held in memory only. The storage layer exists to
// keep embedding vectors keyed by a content hash of (model, text), so that a
// spreadsheet uploaded twice is not embedded twice.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the storage interfaces:
//
//	cache, err := badger.OpenVectorCache("/path/to/cache", false, slog.Default()) // storage.VectorCache
//
// Internal constructors may return concrete types since they are only used
// inside the implementation package.
//
// # Usage
//
// In tests use the in-memory backend:
//
//	cache, err := badger.NewMemoryVectorCache()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cache.Close()
//
// # Thread Safety
//
// All implementations must be safe for concurrent use.
package storage
