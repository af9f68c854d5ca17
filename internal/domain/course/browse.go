package course

import (
	"sort"
	"strings"
)

const (
	defaultTrendingLimit = 5
	defaultSearchLimit   = 10
	categoryLimit        = 5
)

var categorySkills = map[string][]string{
	"programming":     {"python", "javascript", "java"},
	"web_development": {"javascript", "react", "html", "css"},
	"data_science":    {"python", "machine learning", "sql", "data analysis"},
	"cloud":           {"aws", "docker", "kubernetes"},
	"marketing":       {"digital marketing", "seo", "social media"},
}

// Categories lists the names accepted by ByCategory, sorted.
func Categories() []string {
	out := make([]string, 0, len(categorySkills))
	for k := range categorySkills {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Trending returns the highest rated courses, most students first on ties.
func (m *Matcher) Trending(limit int) []Entry {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}

	all := m.allCourses()
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Rating != all[j].Rating {
			return all[i].Rating > all[j].Rating
		}
		return all[i].Students > all[j].Students
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// Search matches the query against skill keys first, then course titles and descriptions.
func (m *Matcher) Search(query string, limit int) []Entry {
	q := normalizeKey(query)
	if q == "" {
		return []Entry{}
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	out := newEntrySet(limit)
	for _, g := range m.groups {
		if strings.Contains(g.Key, q) {
			for _, c := range g.Courses {
				out.add(c)
			}
			continue
		}
		for _, c := range g.Courses {
			if strings.Contains(strings.ToLower(c.Title), q) || strings.Contains(strings.ToLower(c.Description), q) {
				out.add(c)
			}
		}
	}
	return out.items
}

// ByCategory returns courses for the skills grouped under a broad category.
// The boolean is false for an unknown category.
func (m *Matcher) ByCategory(category string) ([]Entry, bool) {
	skills, ok := categorySkills[normalizeKey(category)]
	if !ok {
		return nil, false
	}

	out := newEntrySet(categoryLimit)
	for _, s := range skills {
		for _, c := range m.FindCoursesForSkill(s) {
			out.add(c)
		}
	}
	return out.items, true
}

func (m *Matcher) allCourses() []Entry {
	set := newEntrySet(0)
	for _, g := range m.groups {
		for _, c := range g.Courses {
			set.add(c)
		}
	}
	return set.items
}

// entrySet keeps first occurrences by title, up to limit (0 = unbounded).
type entrySet struct {
	limit int
	seen  map[string]struct{}
	items []Entry
}

func newEntrySet(limit int) *entrySet {
	return &entrySet{limit: limit, seen: map[string]struct{}{}, items: []Entry{}}
}

func (s *entrySet) add(e Entry) {
	if s.limit > 0 && len(s.items) >= s.limit {
		return
	}
	if _, ok := s.seen[e.Title]; ok {
		return
	}
	s.seen[e.Title] = struct{}{}
	s.items = append(s.items, e)
}
