package dto

import "skill-match/internal/domain/course"

type CourseRecommendationRequest struct {
	MissingSkills map[string][]string `json:"missing_skills"`
}

type CourseResponse struct {
	Title       string  `json:"title"`
	Provider    string  `json:"provider"`
	Rating      float64 `json:"rating"`
	Students    int     `json:"students"`
	Duration    string  `json:"duration"`
	Level       string  `json:"level"`
	URL         string  `json:"url"`
	Price       string  `json:"price"`
	Description string  `json:"description"`
}

func NewCourseResponses(entries []course.Entry) []CourseResponse {
	out := make([]CourseResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, CourseResponse{
			Title:       e.Title,
			Provider:    e.Provider,
			Rating:      e.Rating,
			Students:    e.Students,
			Duration:    e.Duration,
			Level:       e.Level,
			URL:         e.URL,
			Price:       e.Price,
			Description: e.Description,
		})
	}
	return out
}
