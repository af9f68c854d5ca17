package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"skill-match/internal/domain/job"
	"skill-match/internal/embedding"
)

// Catalog is the read-only view of the job catalog the engine ranks against.
type Catalog interface {
	Get(id string) (job.Profile, bool)
	All() []job.Profile
	Embedding(id string) (job.Embedding, bool)
}

type CategoryWeight struct {
	Category string
	Weight   float64
}

// DefaultWeights sum to 1.0. A category a profile lacks is skipped and the
// remaining weights are not rescaled, so such profiles top out below 100.
var DefaultWeights = []CategoryWeight{
	{Category: job.CategorySkills, Weight: 0.30},
	{Category: job.CategoryAbilities, Weight: 0.20},
	{Category: job.CategoryKnowledge, Weight: 0.20},
	{Category: job.CategoryWorkActivities, Weight: 0.15},
	{Category: job.CategoryTechnologySkills, Weight: 0.15},
}

type Options struct {
	SimilarityThreshold float64
	MinScore            float64
	MaxResults          int
	Weights             []CategoryWeight
}

func DefaultOptions() Options {
	return Options{
		SimilarityThreshold: 0.1,
		MinScore:            10.0,
		MaxResults:          5,
		Weights:             DefaultWeights,
	}
}

type SkillsMatch struct {
	MatchedSkills   []string
	MatchPercentage float64
	TotalRequired   int
	TotalMatched    int
}

type Result struct {
	JobID         string
	Title         string
	Description   string
	Similarity    float64
	Score         float64
	SkillsMatch   SkillsMatch
	MissingSkills map[string][]string
}

// RankKey puts similarity (~0..1) on the same scale as score (0..100) and averages them.
func RankKey(score, similarity float64) float64 {
	return (score + similarity*50) / 2
}

type Engine struct {
	catalog  Catalog
	provider embedding.Provider
	opts     Options
}

func NewEngine(catalog Catalog, provider embedding.Provider, opts Options) *Engine {
	def := DefaultOptions()
	if opts.MaxResults <= 0 {
		opts.MaxResults = def.MaxResults
	}
	if len(opts.Weights) == 0 {
		opts.Weights = def.Weights
	}
	return &Engine{catalog: catalog, provider: provider, opts: opts}
}

func (e *Engine) Options() Options {
	return e.opts
}

// FindMatches ranks every catalog profile against the skill set and returns
// the best candidates. Any embedding failure fails the whole call.
func (e *Engine) FindMatches(ctx context.Context, skills SkillSet, preference string) ([]Result, error) {
	skills = skills.Clean()
	if len(skills) == 0 {
		return nil, fmt.Errorf("%w: skills are required", ErrInvalidInput)
	}

	memo := newRequestEmbedder(e.provider)

	profileText := skills.Text()
	if pref := strings.TrimSpace(preference); pref != "" {
		profileText += " " + pref
	}
	userVec, err := memo.embed(ctx, profileText)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		profile job.Profile
		sim     float64
		score   float64
	}

	profiles := e.catalog.All()
	candidates := make([]candidate, 0, len(profiles))
	for _, p := range profiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		emb, ok := e.catalog.Embedding(p.ID)
		if !ok {
			return nil, fmt.Errorf("%w: no embedding for job %s", embedding.ErrUnavailable, p.ID)
		}
		sim := Cosine(userVec, emb.Vector)

		score, err := e.weightedScore(ctx, memo, skills, p)
		if err != nil {
			return nil, err
		}

		if sim >= e.opts.SimilarityThreshold || score >= e.opts.MinScore {
			candidates = append(candidates, candidate{profile: p, sim: sim, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return RankKey(candidates[i].score, candidates[i].sim) > RankKey(candidates[j].score, candidates[j].sim)
	})
	if len(candidates) > e.opts.MaxResults {
		candidates = candidates[:e.opts.MaxResults]
	}

	out := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Result{
			JobID:         c.profile.ID,
			Title:         c.profile.Title,
			Description:   c.profile.Description,
			Similarity:    c.sim,
			Score:         c.score,
			SkillsMatch:   MatchSkills(skills, c.profile.Skills),
			MissingSkills: MissingSkills(skills, c.profile),
		})
	}
	return out, nil
}

// WeightedScore is the 0..100 category-weighted semantic score of a profile.
func (e *Engine) WeightedScore(ctx context.Context, skills SkillSet, p job.Profile) (float64, error) {
	return e.weightedScore(ctx, newRequestEmbedder(e.provider), skills.Clean(), p)
}

func (e *Engine) weightedScore(ctx context.Context, memo *requestEmbedder, skills SkillSet, p job.Profile) (float64, error) {
	var total float64
	for _, cw := range e.opts.Weights {
		reqs, ok := p.Category(cw.Category)
		if !ok {
			continue
		}
		s, err := categoryScore(ctx, memo, skills, reqs)
		if err != nil {
			return 0, err
		}
		total += s * cw.Weight
	}
	return total * 100, nil
}

// categoryScore is the clamped similarity between the user's skill text and
// one requirement list.
func categoryScore(ctx context.Context, memo *requestEmbedder, skills SkillSet, reqs []string) (float64, error) {
	if len(reqs) == 0 {
		return 0, nil
	}

	userVec, err := memo.embed(ctx, skills.Text())
	if err != nil {
		return 0, err
	}
	reqVec, err := memo.embed(ctx, strings.Join(reqs, " "))
	if err != nil {
		return 0, err
	}

	sim := Cosine(userVec, reqVec)
	if sim < 0 {
		return 0, nil
	}
	return sim, nil
}

// MatchSkills reports which required skills the user has, in profile casing and order.
func MatchSkills(skills SkillSet, required []string) SkillsMatch {
	have := skills.Lookup()

	matched := make([]string, 0, len(required))
	for _, r := range required {
		if _, ok := have[Normalize(r)]; ok {
			matched = append(matched, r)
		}
	}

	pct := 0.0
	if len(required) > 0 {
		pct = float64(len(matched)) / float64(len(required)) * 100
	}
	return SkillsMatch{
		MatchedSkills:   matched,
		MatchPercentage: pct,
		TotalRequired:   len(required),
		TotalMatched:    len(matched),
	}
}

// GapCategories are the categories reported as missing skills.
var GapCategories = []string{
	job.CategorySkills,
	job.CategoryAbilities,
	job.CategoryKnowledge,
	job.CategoryTechnologySkills,
}

// MissingSkills is the case-insensitive difference profile.X - skills for
// each gap category. Every category key is present, possibly empty.
func MissingSkills(skills SkillSet, p job.Profile) map[string][]string {
	have := skills.Lookup()

	out := make(map[string][]string, len(GapCategories))
	for _, cat := range GapCategories {
		items, _ := p.Category(cat)
		missing := make([]string, 0, len(items))
		for _, it := range items {
			if _, ok := have[Normalize(it)]; !ok {
				missing = append(missing, it)
			}
		}
		out[cat] = missing
	}
	return out
}

type requestEmbedder struct {
	provider embedding.Provider
	vectors  map[string][]float64
}

func newRequestEmbedder(p embedding.Provider) *requestEmbedder {
	return &requestEmbedder{provider: p, vectors: make(map[string][]float64, 8)}
}

func (r *requestEmbedder) embed(ctx context.Context, text string) ([]float64, error) {
	if v, ok := r.vectors[text]; ok {
		return v, nil
	}
	v, err := r.provider.Embed(ctx, text)
	if err != nil {
		if errors.Is(err, embedding.ErrUnavailable) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", embedding.ErrUnavailable, err)
	}
	r.vectors[text] = v
	return v, nil
}
