package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"skill-match/internal/domain/course"
	"skill-match/internal/domain/matching"
	"skill-match/internal/repository"

	"github.com/google/uuid"
)

type SkillGapInput struct {
	JobID     string
	Skills    []string
	SessionID string
}

type SkillGapOutput struct {
	Report  matching.GapReport
	Courses []course.Entry
}

type SkillGapUsecase interface {
	Analyze(ctx context.Context, in SkillGapInput) (SkillGapOutput, error)
}

type SkillGap struct {
	engine   MatchEngine
	courses  CourseCatalog
	sessions repository.SessionRepository
	observer Observer
	logger   *log.Logger
}

func NewSkillGapUsecase(engine MatchEngine, courses CourseCatalog, sessions repository.SessionRepository, observer Observer, logger *log.Logger) *SkillGap {
	return &SkillGap{engine: engine, courses: courses, sessions: sessions, observer: observer, logger: logger}
}

// Analyze builds the gap report for one job and the courses that close it.
// With a session id the recommendation is attached to that session.
func (u *SkillGap) Analyze(ctx context.Context, in SkillGapInput) (SkillGapOutput, error) {
	jobID := strings.TrimSpace(in.JobID)
	if jobID == "" {
		return SkillGapOutput{}, ErrInvalidInput
	}

	var sessionID uuid.UUID
	if raw := strings.TrimSpace(in.SessionID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return SkillGapOutput{}, ErrInvalidInput
		}
		sessionID = id
	}

	report, err := u.engine.AnalyzeSkillGap(ctx, jobID, matching.SkillSet(in.Skills))
	if err != nil {
		if u.logger != nil && !errors.Is(err, matching.ErrJobNotFound) && !errors.Is(err, matching.ErrInvalidInput) {
			u.logger.Printf("[SkillGap] analyze failed job_id=%s err=%v", jobID, err)
		}
		return SkillGapOutput{}, engineError(err)
	}

	courses := u.courses.Recommend(report.MissingSkills)
	if u.observer != nil {
		u.observer.ObserveResults("courses", len(courses))
	}

	if sessionID != uuid.Nil && u.sessions != nil {
		refs := make([]repository.CourseRef, 0, len(courses))
		for _, c := range courses {
			refs = append(refs, repository.CourseRef{Title: c.Title, Provider: c.Provider, URL: c.URL})
		}
		if err := u.sessions.AddCourseRecommendations(ctx, sessionID, report.JobID, refs); err != nil && u.logger != nil {
			u.logger.Printf("[SkillGap] record recommendations failed session_id=%s err=%v", sessionID, err)
		}
	}

	return SkillGapOutput{Report: report, Courses: courses}, nil
}
