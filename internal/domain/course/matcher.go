package course

import (
	"math/rand/v2"
	"strings"
)

const (
	skillsPerCategory  = 3
	coursesPerSkill    = 2
	minRecommendations = 3
	maxRecommendations = 5
	fuzzyThreshold     = 0.6
)

// PriorityOrder is the order missing-skill categories are turned into courses.
var PriorityOrder = []string{"skills", "technology_skills", "knowledge", "abilities"}

type Matcher struct {
	groups  []Group
	index   map[string]int
	general []Entry
	newRand func() *rand.Rand
}

type Option func(*Matcher)

// WithRandSource sets the factory for the per-call random source used by backfill.
func WithRandSource(f func() *rand.Rand) Option {
	return func(m *Matcher) {
		if f != nil {
			m.newRand = f
		}
	}
}

func NewMatcher(groups []Group, general []Entry, opts ...Option) *Matcher {
	m := &Matcher{
		groups:  make([]Group, 0, len(groups)),
		index:   make(map[string]int, len(groups)),
		general: append([]Entry(nil), general...),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, g := range groups {
		key := normalizeKey(g.Key)
		if key == "" {
			continue
		}
		if _, dup := m.index[key]; dup {
			continue
		}
		m.index[key] = len(m.groups)
		m.groups = append(m.groups, Group{Key: key, Courses: g.Courses})
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Recommend turns missing skills per category into 3 to 5 courses with
// unique titles, topping up from the general pool when too few match.
func (m *Matcher) Recommend(missing map[string][]string) []Entry {
	picked := make([]Entry, 0, maxRecommendations*2)
	for _, cat := range PriorityOrder {
		skills, ok := missing[cat]
		if !ok {
			continue
		}
		if len(skills) > skillsPerCategory {
			skills = skills[:skillsPerCategory]
		}
		for _, s := range skills {
			courses := m.FindCoursesForSkill(s)
			if len(courses) > coursesPerSkill {
				courses = courses[:coursesPerSkill]
			}
			picked = append(picked, courses...)
		}
	}

	seen := make(map[string]struct{}, maxRecommendations)
	out := make([]Entry, 0, maxRecommendations)
	for _, c := range picked {
		if _, ok := seen[c.Title]; ok {
			continue
		}
		seen[c.Title] = struct{}{}
		out = append(out, c)
		if len(out) >= maxRecommendations {
			break
		}
	}

	if len(out) < minRecommendations && len(m.general) > 0 {
		rng := m.newRand()
		for _, i := range rng.Perm(len(m.general)) {
			if len(out) >= minRecommendations {
				break
			}
			g := m.general[i]
			if _, ok := seen[g.Title]; ok {
				continue
			}
			seen[g.Title] = struct{}{}
			out = append(out, g)
		}
	}

	return out
}

// FindCoursesForSkill resolves a skill to courses: exact key, then the first
// key containing or contained in the skill, then every key whose word-set
// Jaccard similarity exceeds 0.6.
func (m *Matcher) FindCoursesForSkill(skill string) []Entry {
	s := normalizeKey(skill)
	if s == "" {
		return nil
	}

	if i, ok := m.index[s]; ok {
		return cloneEntries(m.groups[i].Courses)
	}

	for _, g := range m.groups {
		if strings.Contains(g.Key, s) || strings.Contains(s, g.Key) {
			return cloneEntries(g.Courses)
		}
	}

	var out []Entry
	for _, g := range m.groups {
		if Jaccard(s, g.Key) > fuzzyThreshold {
			out = append(out, g.Courses...)
		}
	}
	return out
}

// Jaccard is |A∩B| / |A∪B| over the whitespace separated words of a and b.
func Jaccard(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	inter := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		out[f] = struct{}{}
	}
	return out
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cloneEntries(in []Entry) []Entry {
	return append([]Entry(nil), in...)
}
