package dto

import (
	"skill-match/internal/domain/course"
	"skill-match/internal/domain/matching"
)

type SkillGapRequest struct {
	JobID     string   `json:"job_id"`
	Skills    []string `json:"skills"`
	SessionID string   `json:"session_id"`
}

type SkillGapReportResponse struct {
	JobID                  string              `json:"job_id"`
	JobTitle               string              `json:"job_title"`
	CurrentScore           float64             `json:"current_score"`
	QualificationThreshold float64             `json:"qualification_threshold"`
	Qualifies              bool                `json:"qualifies"`
	MissingSkills          map[string][]string `json:"missing_skills"`
	SkillsMatch            SkillsMatchResponse `json:"skills_match"`
	HotTechnologies        []string            `json:"hot_technologies"`
}

type SkillGapResponse struct {
	SkillGap           SkillGapReportResponse `json:"skill_gap"`
	RecommendedCourses []CourseResponse       `json:"recommended_courses"`
}

func NewSkillGapResponse(r matching.GapReport, courses []course.Entry) SkillGapResponse {
	hot := r.HotTechnologies
	if hot == nil {
		hot = []string{}
	}
	return SkillGapResponse{
		SkillGap: SkillGapReportResponse{
			JobID:                  r.JobID,
			JobTitle:               r.JobTitle,
			CurrentScore:           r.CurrentScore,
			QualificationThreshold: r.QualificationThreshold,
			Qualifies:              r.Qualifies,
			MissingSkills:          r.MissingSkills,
			SkillsMatch:            NewSkillsMatchResponse(r.SkillsMatch),
			HotTechnologies:        hot,
		},
		RecommendedCourses: NewCourseResponses(courses),
	}
}
