package job

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	CategorySkills           = "skills"
	CategoryAbilities        = "abilities"
	CategoryKnowledge        = "knowledge"
	CategoryWorkActivities   = "work_activities"
	CategoryTechnologySkills = "technology_skills"
)

// Profile is an occupational profile from the static catalog.
type Profile struct {
	ID               string
	Title            string
	Description      string
	Skills           []string
	Abilities        []string
	Knowledge        []string
	WorkActivities   []string
	TechnologySkills []string
}

// Category returns the requirement list stored under a category name.
// The boolean is false for unknown names and for categories the profile leaves empty.
func (p Profile) Category(name string) ([]string, bool) {
	var items []string
	switch name {
	case CategorySkills:
		items = p.Skills
	case CategoryAbilities:
		items = p.Abilities
	case CategoryKnowledge:
		items = p.Knowledge
	case CategoryWorkActivities:
		items = p.WorkActivities
	case CategoryTechnologySkills:
		items = p.TechnologySkills
	default:
		return nil, false
	}
	return items, len(items) > 0
}

// CanonicalText is the text the profile embedding is derived from.
func (p Profile) CanonicalText() string {
	parts := []string{
		p.Title,
		p.Description,
		strings.Join(p.Skills, " "),
		strings.Join(p.Abilities, " "),
		strings.Join(p.Knowledge, " "),
		strings.Join(p.WorkActivities, " "),
		strings.Join(p.TechnologySkills, " "),
	}
	return strings.Join(parts, " ")
}

// Embedding is the vector precomputed for a profile.
type Embedding struct {
	JobID       string
	Vector      []float64
	Fingerprint string
}

func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
