package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"skill-match/internal/domain/course"
	"skill-match/internal/domain/job"
	"skill-match/internal/embedding"
	"skill-match/internal/worker"
)

// Store is the immutable, embedded catalog. Safe for concurrent reads.
type Store struct {
	version    string
	profiles   []job.Profile
	index      map[string]int
	embeddings map[string]job.Embedding
	groups     []course.Group
	general    []course.Entry
	keywords   []string
}

type BootstrapOptions struct {
	Concurrency       int
	RequestsPerSecond float64
	Logger            *log.Logger
}

// Bootstrap embeds every profile's canonical text once and returns the
// ready store. Any embedding failure aborts the whole bootstrap.
func Bootstrap(ctx context.Context, data Data, provider embedding.Provider, opts BootstrapOptions) (*Store, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: no provider configured", embedding.ErrUnavailable)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	start := time.Now()
	vectors := make([][]float64, len(data.Jobs))
	err := worker.ForEachLimited(ctx, len(data.Jobs), opts.Concurrency, opts.RequestsPerSecond, func(ctx context.Context, i int) error {
		p := data.Jobs[i]
		v, err := provider.Embed(ctx, p.CanonicalText())
		if err != nil {
			return fmt.Errorf("embed job %s: %w", p.ID, err)
		}
		if len(v) == 0 {
			return fmt.Errorf("embed job %s: empty vector", p.ID)
		}
		vectors[i] = v
		return nil
	})
	if err != nil {
		if !errors.Is(err, embedding.ErrUnavailable) && !errors.Is(err, context.Canceled) {
			err = fmt.Errorf("%w: %w", embedding.ErrUnavailable, err)
		}
		if opts.Logger != nil {
			opts.Logger.Printf("[Catalog] bootstrap failed jobs=%d err=%v", len(data.Jobs), err)
		}
		return nil, err
	}

	s := &Store{
		version:    data.Version,
		profiles:   append([]job.Profile(nil), data.Jobs...),
		index:      make(map[string]int, len(data.Jobs)),
		embeddings: make(map[string]job.Embedding, len(data.Jobs)),
		groups:     append([]course.Group(nil), data.CourseGroups...),
		general:    append([]course.Entry(nil), data.GeneralCourses...),
	}
	for _, k := range data.SkillKeywords {
		s.keywords = append(s.keywords, k.Terms...)
	}
	for i, p := range s.profiles {
		s.index[p.ID] = i
		s.embeddings[p.ID] = job.Embedding{
			JobID:       p.ID,
			Vector:      vectors[i],
			Fingerprint: job.Fingerprint(p.CanonicalText()),
		}
	}

	if opts.Logger != nil {
		opts.Logger.Printf("[Catalog] bootstrap complete version=%s jobs=%d course_groups=%d elapsed=%s",
			s.version, len(s.profiles), len(s.groups), time.Since(start).Round(time.Millisecond))
	}
	return s, nil
}

func (s *Store) Get(id string) (job.Profile, bool) {
	i, ok := s.index[id]
	if !ok {
		return job.Profile{}, false
	}
	return s.profiles[i], true
}

// All returns profiles in catalog order.
func (s *Store) All() []job.Profile {
	return append([]job.Profile(nil), s.profiles...)
}

func (s *Store) Embedding(id string) (job.Embedding, bool) {
	e, ok := s.embeddings[id]
	return e, ok
}

func (s *Store) CourseGroups() []course.Group {
	return append([]course.Group(nil), s.groups...)
}

func (s *Store) GeneralCourses() []course.Entry {
	return append([]course.Entry(nil), s.general...)
}

// Vocabulary lists every profile's skills and technology skills in catalog
// order, followed by the extra skill keywords. Duplicates are kept.
func (s *Store) Vocabulary() []string {
	out := make([]string, 0, len(s.keywords)+len(s.profiles)*16)
	for _, p := range s.profiles {
		out = append(out, p.Skills...)
		out = append(out, p.TechnologySkills...)
	}
	return append(out, s.keywords...)
}

func (s *Store) Version() string {
	return s.version
}

func (s *Store) Len() int {
	return len(s.profiles)
}
