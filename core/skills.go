package core

import (
	"slices"
	"strings"
)

// SkillSet is a set of normalized (trimmed, lowercase) skill names.
type SkillSet map[string]struct{}

// NormalizeSkill trims and lowercases a single skill name.
func NormalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// ParseSkills splits a comma-separated field into a SkillSet.
// Empty entries are dropped and duplicates collapse.
func ParseSkills(field string) SkillSet {
	return NewSkillSet(strings.Split(field, ",")...)
}

// NewSkillSet normalizes the given names into a SkillSet.
func NewSkillSet(skills ...string) SkillSet {
	set := make(SkillSet, len(skills))
	for _, s := range skills {
		if n := NormalizeSkill(s); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Has reports whether the set contains the (already normalized) skill.
func (s SkillSet) Has(skill string) bool {
	_, ok := s[skill]
	return ok
}

// Len returns the number of distinct skills.
func (s SkillSet) Len() int {
	return len(s)
}

// Contains reports whether every skill in other is present in s.
// An empty other is contained in every set.
func (s SkillSet) Contains(other SkillSet) bool {
	for skill := range other {
		if !s.Has(skill) {
			return false
		}
	}
	return true
}

// Sorted returns the skills in ascending order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	slices.Sort(out)
	return out
}
