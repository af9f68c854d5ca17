package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemorySessionRepository keeps sessions in process memory. Used when no
// database is configured.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	nextID   int64
	now      func() time.Time
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[uuid.UUID]*Session),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemorySessionRepository) Create(_ context.Context, s NewSession) (Session, error) {
	out := Session{
		ID:              uuid.New(),
		Skills:          append([]string{}, s.Skills...),
		JobPreference:   s.JobPreference,
		Matches:         append([]MatchSummary{}, s.Matches...),
		Recommendations: []CourseRecommendation{},
		Applications:    []JobApplication{},
		CreatedAt:       r.now(),
	}

	stored := out
	stored.Skills = append([]string{}, out.Skills...)
	stored.Matches = append([]MatchSummary{}, out.Matches...)

	r.mu.Lock()
	r.sessions[out.ID] = &stored
	r.mu.Unlock()
	return out, nil
}

func (r *MemorySessionRepository) Get(_ context.Context, id uuid.UUID) (Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	out := *s
	out.Skills = append([]string{}, s.Skills...)
	out.Matches = append([]MatchSummary{}, s.Matches...)
	out.Recommendations = append([]CourseRecommendation{}, s.Recommendations...)
	out.Applications = append([]JobApplication{}, s.Applications...)
	return out, nil
}

func (r *MemorySessionRepository) AddCourseRecommendations(_ context.Context, sessionID uuid.UUID, jobID string, courses []CourseRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	s.Recommendations = append(s.Recommendations, CourseRecommendation{
		JobID:     jobID,
		Courses:   append([]CourseRef{}, courses...),
		CreatedAt: r.now(),
	})
	return nil
}

func (r *MemorySessionRepository) AddJobApplication(_ context.Context, sessionID uuid.UUID, a NewJobApplication) (JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return JobApplication{}, ErrSessionNotFound
	}
	r.nextID++
	out := JobApplication{
		ID:         r.nextID,
		JobID:      a.JobID,
		JobTitle:   a.JobTitle,
		MatchScore: a.MatchScore,
		Status:     applicationStatus(a.Status),
		AppliedAt:  r.now(),
	}
	s.Applications = append(s.Applications, out)
	return out, nil
}

func (r *MemorySessionRepository) Stats(_ context.Context, id uuid.UUID) (SessionStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return SessionStats{}, ErrSessionNotFound
	}
	out := SessionStats{
		TotalSkills:     len(s.Skills),
		JobMatches:      len(s.Matches),
		JobApplications: len(s.Applications),
	}
	for _, rec := range s.Recommendations {
		out.CourseRecommendations += len(rec.Courses)
	}
	return out, nil
}

func (r *MemorySessionRepository) DeleteOlderThan(_ context.Context, age time.Duration) (int64, error) {
	cutoff := r.now().Add(-age)

	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.CreatedAt.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}
