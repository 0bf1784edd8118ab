package ranking

import (
	"fmt"

	"github.com/poiesic/talentrank/core"
)

// Score weights. They sum to 1.
const (
	WeightSimilarity = 0.5
	WeightSkills     = 0.3
	WeightAge        = 0.2
)

// skillRatio is 1 without required skills, otherwise the share of the
// record's skills that were asked for.
func skillRatio(required, skills core.SkillSet) float64 {
	if required.Len() == 0 {
		return 1.0
	}
	return float64(required.Len()) / float64(max(skills.Len(), 1))
}

// ageScore is constant for records that pass the age filter.
func ageScore(int) float64 {
	return 1.0
}

func composite(similarity, ratio, age float64) float64 {
	return WeightSimilarity*similarity + WeightSkills*ratio + WeightAge*age
}

func justify(similarity, age float64, hasRequired bool) string {
	if hasRequired {
		return fmt.Sprintf("Role sim %.2f; all required skills present; age score %.2f", similarity, age)
	}
	return fmt.Sprintf("Role sim %.2f; age score %.2f", similarity, age)
}
