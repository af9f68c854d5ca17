package usecase

import (
	"context"
	"time"

	"skill-match/internal/domain/course"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/matching"
)

type MatchEngine interface {
	FindMatches(ctx context.Context, skills matching.SkillSet, preference string) ([]matching.Result, error)
	AnalyzeSkillGap(ctx context.Context, jobID string, skills matching.SkillSet) (matching.GapReport, error)
	SkillSuggestions(query string) []string
}

type SkillExtractor interface {
	Extract(text string) []string
}

type CourseCatalog interface {
	Recommend(missing map[string][]string) []course.Entry
	Trending(limit int) []course.Entry
	Search(query string, limit int) []course.Entry
	ByCategory(category string) ([]course.Entry, bool)
}

type JobCatalog interface {
	Get(id string) (job.Profile, bool)
	All() []job.Profile
	Version() string
}

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Observer receives result counts and persistence failures. Optional.
type Observer interface {
	ObserveResults(operation string, n int)
	SessionPersistFailed()
}
