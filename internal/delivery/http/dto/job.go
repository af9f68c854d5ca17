package dto

import "skill-match/internal/domain/job"

type JobListItemResponse struct {
	JobID       string `json:"job_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type JobListResponse struct {
	CatalogVersion string                `json:"catalog_version"`
	Jobs           []JobListItemResponse `json:"jobs"`
}

type JobDetailResponse struct {
	JobID            string   `json:"job_id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Skills           []string `json:"skills"`
	Abilities        []string `json:"abilities"`
	Knowledge        []string `json:"knowledge"`
	WorkActivities   []string `json:"work_activities"`
	TechnologySkills []string `json:"technology_skills"`
}

func NewJobDetailResponse(p job.Profile) JobDetailResponse {
	return JobDetailResponse{
		JobID:            p.ID,
		Title:            p.Title,
		Description:      p.Description,
		Skills:           orEmpty(p.Skills),
		Abilities:        orEmpty(p.Abilities),
		Knowledge:        orEmpty(p.Knowledge),
		WorkActivities:   orEmpty(p.WorkActivities),
		TechnologySkills: orEmpty(p.TechnologySkills),
	}
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
