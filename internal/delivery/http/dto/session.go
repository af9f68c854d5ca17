package dto

import (
	"time"

	"skill-match/internal/repository"
)

type SessionMatchResponse struct {
	JobID      string  `json:"job_id"`
	Title      string  `json:"title"`
	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

type SessionCourseResponse struct {
	Title    string `json:"title"`
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

type SessionRecommendationResponse struct {
	JobID     string                  `json:"job_id"`
	Courses   []SessionCourseResponse `json:"courses"`
	CreatedAt string                  `json:"created_at"`
}

type JobApplicationRequest struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type JobApplicationResponse struct {
	ID         int64   `json:"id"`
	JobID      string  `json:"job_id"`
	JobTitle   string  `json:"job_title"`
	MatchScore float64 `json:"match_score"`
	Status     string  `json:"status"`
	AppliedAt  string  `json:"applied_at"`
}

type SessionStatsResponse struct {
	TotalSkills           int `json:"total_skills"`
	JobMatches            int `json:"job_matches"`
	JobApplications       int `json:"job_applications"`
	CourseRecommendations int `json:"course_recommendations"`
}

type SessionResponse struct {
	SessionID       string                          `json:"session_id"`
	Skills          []string                        `json:"skills"`
	JobPreference   string                          `json:"job_preference"`
	Matches         []SessionMatchResponse          `json:"matches"`
	Recommendations []SessionRecommendationResponse `json:"recommendations"`
	Applications    []JobApplicationResponse        `json:"applications"`
	CreatedAt       string                          `json:"created_at"`
}

func NewJobApplicationResponse(a repository.JobApplication) JobApplicationResponse {
	return JobApplicationResponse{
		ID:         a.ID,
		JobID:      a.JobID,
		JobTitle:   a.JobTitle,
		MatchScore: a.MatchScore,
		Status:     a.Status,
		AppliedAt:  a.AppliedAt.UTC().Format(time.RFC3339),
	}
}

func NewSessionStatsResponse(s repository.SessionStats) SessionStatsResponse {
	return SessionStatsResponse(s)
}

func NewSessionResponse(s repository.Session) SessionResponse {
	out := SessionResponse{
		SessionID:       s.ID.String(),
		Skills:          orEmpty(s.Skills),
		JobPreference:   s.JobPreference,
		Matches:         make([]SessionMatchResponse, 0, len(s.Matches)),
		Recommendations: make([]SessionRecommendationResponse, 0, len(s.Recommendations)),
		Applications:    make([]JobApplicationResponse, 0, len(s.Applications)),
		CreatedAt:       s.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, m := range s.Matches {
		out.Matches = append(out.Matches, SessionMatchResponse(m))
	}
	for _, r := range s.Recommendations {
		courses := make([]SessionCourseResponse, 0, len(r.Courses))
		for _, c := range r.Courses {
			courses = append(courses, SessionCourseResponse(c))
		}
		out.Recommendations = append(out.Recommendations, SessionRecommendationResponse{
			JobID:     r.JobID,
			Courses:   courses,
			CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	for _, a := range s.Applications {
		out.Applications = append(out.Applications, NewJobApplicationResponse(a))
	}
	return out
}
