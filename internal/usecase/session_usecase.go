package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"skill-match/internal/repository"

	"github.com/google/uuid"
)

type ApplicationInput struct {
	JobID  string
	Status string
}

type SessionUsecase interface {
	Get(ctx context.Context, id string) (repository.Session, error)
	RecordApplication(ctx context.Context, id string, in ApplicationInput) (repository.JobApplication, error)
	Stats(ctx context.Context, id string) (repository.SessionStats, error)
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)
}

type Session struct {
	repo   repository.SessionRepository
	jobs   JobCatalog
	logger *log.Logger
}

func NewSessionUsecase(repo repository.SessionRepository, jobs JobCatalog, logger *log.Logger) *Session {
	return &Session{repo: repo, jobs: jobs, logger: logger}
}

func (u *Session) Get(ctx context.Context, id string) (repository.Session, error) {
	sid, err := parseSessionID(id)
	if err != nil {
		return repository.Session{}, err
	}
	s, err := u.repo.Get(ctx, sid)
	if err != nil {
		return repository.Session{}, u.repoError("get", sid, err)
	}
	return s, nil
}

// RecordApplication notes interest in a job for the session. The match
// score comes from the session's own results; a catalog job the session
// never matched is recorded with a score of 0.
func (u *Session) RecordApplication(ctx context.Context, id string, in ApplicationInput) (repository.JobApplication, error) {
	sid, err := parseSessionID(id)
	if err != nil {
		return repository.JobApplication{}, err
	}
	jobID := strings.TrimSpace(in.JobID)
	if jobID == "" || !repository.ValidApplicationStatus(in.Status) {
		return repository.JobApplication{}, ErrInvalidInput
	}

	s, err := u.repo.Get(ctx, sid)
	if err != nil {
		return repository.JobApplication{}, u.repoError("get", sid, err)
	}

	app := repository.NewJobApplication{JobID: jobID, Status: in.Status}
	matched := false
	for _, m := range s.Matches {
		if m.JobID == jobID {
			app.JobTitle, app.MatchScore = m.Title, m.Score
			matched = true
			break
		}
	}
	if !matched {
		p, ok := u.lookupJob(jobID)
		if !ok {
			return repository.JobApplication{}, ErrJobNotFound
		}
		app.JobTitle = p
	}

	out, err := u.repo.AddJobApplication(ctx, sid, app)
	if err != nil {
		return repository.JobApplication{}, u.repoError("add application", sid, err)
	}
	if u.logger != nil {
		u.logger.Printf("[Session] application recorded session_id=%s job_id=%s status=%s", sid, jobID, out.Status)
	}
	return out, nil
}

func (u *Session) Stats(ctx context.Context, id string) (repository.SessionStats, error) {
	sid, err := parseSessionID(id)
	if err != nil {
		return repository.SessionStats{}, err
	}
	out, err := u.repo.Stats(ctx, sid)
	if err != nil {
		return repository.SessionStats{}, u.repoError("stats", sid, err)
	}
	return out, nil
}

func (u *Session) lookupJob(id string) (string, bool) {
	if u.jobs == nil {
		return "", false
	}
	p, ok := u.jobs.Get(id)
	return p.Title, ok
}

func (u *Session) repoError(op string, sid uuid.UUID, err error) error {
	if errors.Is(err, repository.ErrSessionNotFound) {
		return ErrSessionNotFound
	}
	if u.logger != nil {
		u.logger.Printf("[Session] %s failed session_id=%s err=%v", op, sid, err)
	}
	return ErrInternal
}

func parseSessionID(id string) (uuid.UUID, error) {
	sid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, ErrInvalidInput
	}
	return sid, nil
}

// Cleanup removes sessions older than retention.
func (u *Session) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, ErrInvalidInput
	}
	n, err := u.repo.DeleteOlderThan(ctx, retention)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Session] cleanup failed err=%v", err)
		}
		return 0, ErrInternal
	}
	if u.logger != nil && n > 0 {
		u.logger.Printf("[Session] cleanup removed=%d retention=%s", n, retention)
	}
	return n, nil
}
