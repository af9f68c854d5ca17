package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

const (
	hotTechnologiesLimit = 5
	suggestionsLimit     = 10
)

type GapReport struct {
	JobID                  string
	JobTitle               string
	CurrentScore           float64
	QualificationThreshold float64
	Qualifies              bool
	MissingSkills          map[string][]string
	SkillsMatch            SkillsMatch
	HotTechnologies        []string
}

// AnalyzeSkillGap scores one job against the skill set and lists what is missing.
func (e *Engine) AnalyzeSkillGap(ctx context.Context, jobID string, skills SkillSet) (GapReport, error) {
	p, ok := e.catalog.Get(strings.TrimSpace(jobID))
	if !ok {
		return GapReport{}, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	skills = skills.Clean()
	if len(skills) == 0 {
		return GapReport{}, fmt.Errorf("%w: skills are required", ErrInvalidInput)
	}

	score, err := e.weightedScore(ctx, newRequestEmbedder(e.provider), skills, p)
	if err != nil {
		return GapReport{}, err
	}

	hot := p.TechnologySkills
	if len(hot) > hotTechnologiesLimit {
		hot = hot[:hotTechnologiesLimit]
	}

	return GapReport{
		JobID:                  p.ID,
		JobTitle:               p.Title,
		CurrentScore:           score,
		QualificationThreshold: e.opts.MinScore,
		Qualifies:              score >= e.opts.MinScore,
		MissingSkills:          MissingSkills(skills, p),
		SkillsMatch:            MatchSkills(skills, p.Skills),
		HotTechnologies:        append([]string(nil), hot...),
	}, nil
}

// SkillSuggestions autocompletes against every profile's skills and
// technology skills: case-insensitive containment, sorted, at most 10.
func (e *Engine) SkillSuggestions(query string) []string {
	q := Normalize(query)

	seen := make(map[string]struct{})
	out := make([]string, 0, suggestionsLimit)
	for _, p := range e.catalog.All() {
		for _, list := range [][]string{p.Skills, p.TechnologySkills} {
			for _, s := range list {
				if _, ok := seen[s]; ok {
					continue
				}
				seen[s] = struct{}{}
				if strings.Contains(strings.ToLower(s), q) {
					out = append(out, s)
				}
			}
		}
	}

	sort.Strings(out)
	if len(out) > suggestionsLimit {
		out = out[:suggestionsLimit]
	}
	return out
}
