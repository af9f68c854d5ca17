package usecase

import (
	"context"
	"strings"

	"skill-match/internal/domain/job"
)

type JobSummary struct {
	ID          string
	Title       string
	Description string
}

type JobUsecase interface {
	List(ctx context.Context) ([]JobSummary, string, error)
	Get(ctx context.Context, id string) (job.Profile, error)
}

type Job struct {
	catalog JobCatalog
}

func NewJobUsecase(catalog JobCatalog) *Job {
	return &Job{catalog: catalog}
}

// List returns every profile in catalog order along with the catalog version.
func (u *Job) List(_ context.Context) ([]JobSummary, string, error) {
	all := u.catalog.All()
	out := make([]JobSummary, 0, len(all))
	for _, p := range all {
		out = append(out, JobSummary{ID: p.ID, Title: p.Title, Description: p.Description})
	}
	return out, u.catalog.Version(), nil
}

func (u *Job) Get(_ context.Context, id string) (job.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return job.Profile{}, ErrInvalidInput
	}
	p, ok := u.catalog.Get(id)
	if !ok {
		return job.Profile{}, ErrJobNotFound
	}
	return p, nil
}
