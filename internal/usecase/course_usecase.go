package usecase

import (
	"context"
	"strings"

	"skill-match/internal/domain/course"
)

type CourseUsecase interface {
	Recommend(ctx context.Context, missing map[string][]string) ([]course.Entry, error)
	Trending(ctx context.Context, limit int) ([]course.Entry, error)
	Search(ctx context.Context, query string, limit int) ([]course.Entry, error)
	ByCategory(ctx context.Context, category string) ([]course.Entry, error)
	Categories(ctx context.Context) []string
}

type Course struct {
	courses  CourseCatalog
	observer Observer
}

func NewCourseUsecase(courses CourseCatalog, observer Observer) *Course {
	return &Course{courses: courses, observer: observer}
}

func (u *Course) Recommend(_ context.Context, missing map[string][]string) ([]course.Entry, error) {
	if missing == nil {
		missing = map[string][]string{}
	}
	out := u.courses.Recommend(missing)
	if u.observer != nil {
		u.observer.ObserveResults("courses", len(out))
	}
	return out, nil
}

func (u *Course) Trending(_ context.Context, limit int) ([]course.Entry, error) {
	if limit < 0 {
		return nil, ErrInvalidInput
	}
	return u.courses.Trending(limit), nil
}

func (u *Course) Search(_ context.Context, query string, limit int) ([]course.Entry, error) {
	if strings.TrimSpace(query) == "" || limit < 0 {
		return nil, ErrInvalidInput
	}
	return u.courses.Search(query, limit), nil
}

func (u *Course) ByCategory(_ context.Context, category string) ([]course.Entry, error) {
	out, ok := u.courses.ByCategory(category)
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return out, nil
}

func (u *Course) Categories(_ context.Context) []string {
	return course.Categories()
}
