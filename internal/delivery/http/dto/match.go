package dto

import "skill-match/internal/domain/matching"

type MatchRequest struct {
	Skills        []string `json:"skills"`
	JobPreference string   `json:"job_preference"`
}

type SkillsMatchResponse struct {
	MatchedSkills   []string `json:"matched_skills"`
	MatchPercentage float64  `json:"match_percentage"`
	TotalRequired   int      `json:"total_required"`
	TotalMatched    int      `json:"total_matched"`
}

type JobMatchResponse struct {
	JobID         string              `json:"job_id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Similarity    float64             `json:"similarity"`
	Score         float64             `json:"score"`
	SkillsMatch   SkillsMatchResponse `json:"skills_match"`
	MissingSkills map[string][]string `json:"missing_skills"`
}

type MatchResponse struct {
	JobMatches []JobMatchResponse `json:"job_matches"`
	SessionID  string             `json:"session_id,omitempty"`
}

func NewSkillsMatchResponse(m matching.SkillsMatch) SkillsMatchResponse {
	matched := m.MatchedSkills
	if matched == nil {
		matched = []string{}
	}
	return SkillsMatchResponse{
		MatchedSkills:   matched,
		MatchPercentage: m.MatchPercentage,
		TotalRequired:   m.TotalRequired,
		TotalMatched:    m.TotalMatched,
	}
}

func NewJobMatchResponses(results []matching.Result) []JobMatchResponse {
	out := make([]JobMatchResponse, 0, len(results))
	for _, r := range results {
		out = append(out, JobMatchResponse{
			JobID:         r.JobID,
			Title:         r.Title,
			Description:   r.Description,
			Similarity:    r.Similarity,
			Score:         r.Score,
			SkillsMatch:   NewSkillsMatchResponse(r.SkillsMatch),
			MissingSkills: r.MissingSkills,
		})
	}
	return out
}
