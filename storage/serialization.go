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

import (
	"errors"
	"fmt"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/talentrank/core"
)

// VectorMUS encodes a vector as a varint length followed by raw
// little-endian float32 values.
var VectorMUS = ord.NewSliceSer[float32](raw.Float32)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, raw.Uint64.Size(uint64(id)))
	raw.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := raw.Uint64.Unmarshal(data)
	if err != nil {
		return 0, wrapMUSError("id", err)
	}
	return core.ID(id), nil
}

// MarshalVector serializes a vector to bytes.
func MarshalVector(v []float32) []byte {
	buf := make([]byte, VectorMUS.Size(v))
	VectorMUS.Marshal(v, buf)
	return buf
}

// UnmarshalVector deserializes a vector written by MarshalVector. The
// encoded length is checked against the remaining bytes before anything
// is allocated.
func UnmarshalVector(data []byte) ([]float32, error) {
	length, n, err := varint.PositiveInt.Unmarshal(data)
	if err != nil {
		return nil, wrapMUSError("vector length", err)
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: negative vector length %d", ErrSerializationFailed, length)
	}
	if rest := len(data) - n; length > rest/raw.Float32.Size(0) {
		return nil, fmt.Errorf("%w: want %d values, have %d bytes", ErrTruncatedData, length, rest)
	}

	v, used, err := VectorMUS.Unmarshal(data)
	if err != nil {
		return nil, wrapMUSError("vector", err)
	}
	if used != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-used)
	}
	return v, nil
}

func wrapMUSError(what string, err error) error {
	if errors.Is(err, mus.ErrTooSmallByteSlice) {
		return fmt.Errorf("%w: %s: %w", ErrTruncatedData, what, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrSerializationFailed, what, err)
}
