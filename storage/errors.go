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

package storage

import "errors"

var (
	// ErrStorageClosed is returned by a vector cache used after Close.
	ErrStorageClosed = errors.New("vector cache is closed")

	// ErrSerializationFailed indicates a stored id or vector that does not decode.
	ErrSerializationFailed = errors.New("malformed cache entry")

	// ErrTruncatedData indicates a stored value shorter than its encoding requires.
	ErrTruncatedData = errors.New("truncated cache entry")
)
