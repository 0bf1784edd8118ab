package core

import (
	"encoding/binary"
	"sort"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Employee is one validated row of a loaded dataset.
// Vector is populated at load time from Roles and never changes afterwards.
type Employee struct {
	Position int    // 0-based load order
	Name     string
	Age      int
	Skills   SkillSet
	Roles    string    // free text used for the semantic embedding
	Vector   []float32 // unit-normalized embedding of Roles
}

// Candidate is an Employee scored against a single query.
type Candidate struct {
	Position      int      `json:"-"`
	Name          string   `json:"name"`
	Age           int      `json:"age"`
	Skills        []string `json:"skills"`
	Roles         string   `json:"roles"`
	Score         float64  `json:"score"`
	Justification string   `json:"justification"`

	Similarity float64 `json:"-"`
	SkillRatio float64 `json:"-"`
	AgeScore   float64 `json:"-"`
}

// SortCandidates orders candidates by score (descending), then by load position (ascending).
func SortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score == candidates[j].Score {
			return candidates[i].Position < candidates[j].Position
		}
		return candidates[i].Score > candidates[j].Score
	})
}
