package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"skill-match/internal/domain/course"
	"skill-match/internal/domain/job"
)

//go:embed data/catalog.toml
var defaultCatalog []byte

var ErrInvalidCatalog = errors.New("invalid catalog")

// MinGeneralCourses is the fewest distinct general course titles a catalog
// may carry; recommendations are topped up to three from this pool.
const MinGeneralCourses = 3

// Data is a decoded catalog before embeddings are computed.
type Data struct {
	Version        string
	Jobs           []job.Profile
	CourseGroups   []course.Group
	GeneralCourses []course.Entry
	SkillKeywords  []KeywordGroup
}

// KeywordGroup is extra vocabulary for skill extraction from free text.
type KeywordGroup struct {
	Category string
	Terms    []string
}

type catalogFile struct {
	Version        string         `toml:"version"`
	Jobs           []jobRecord    `toml:"jobs"`
	CourseGroups   []groupRecord  `toml:"course_groups"`
	GeneralCourses []courseRecord `toml:"general_courses"`
	SkillKeywords  []keywordRecord `toml:"skill_keywords"`
}

type keywordRecord struct {
	Category string   `toml:"category"`
	Terms    []string `toml:"terms"`
}

type jobRecord struct {
	ID               string   `toml:"id"`
	Title            string   `toml:"title"`
	Description      string   `toml:"description"`
	Skills           []string `toml:"skills"`
	Abilities        []string `toml:"abilities"`
	Knowledge        []string `toml:"knowledge"`
	WorkActivities   []string `toml:"work_activities"`
	TechnologySkills []string `toml:"technology_skills"`
}

type groupRecord struct {
	Key     string         `toml:"key"`
	Courses []courseRecord `toml:"courses"`
}

type courseRecord struct {
	Title       string  `toml:"title"`
	Provider    string  `toml:"provider"`
	Rating      float64 `toml:"rating"`
	Students    int     `toml:"students"`
	Duration    string  `toml:"duration"`
	Level       string  `toml:"level"`
	URL         string  `toml:"url"`
	Price       string  `toml:"price"`
	Description string  `toml:"description"`
}

// Default returns the catalog compiled into the binary.
func Default() (Data, error) {
	return parse(string(defaultCatalog))
}

func LoadFile(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return parse(string(b))
}

func Load(r io.Reader) (Data, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Data{}, fmt.Errorf("read catalog: %w", err)
	}
	return parse(string(b))
}

func parse(content string) (Data, error) {
	var f catalogFile
	md, err := toml.Decode(content, &f)
	if err != nil {
		return Data{}, fmt.Errorf("%w: failed to parse: %w", ErrInvalidCatalog, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Data{}, fmt.Errorf("%w: unknown key %s", ErrInvalidCatalog, undecoded[0].String())
	}

	data := Data{
		Version:        strings.TrimSpace(f.Version),
		Jobs:           make([]job.Profile, 0, len(f.Jobs)),
		CourseGroups:   make([]course.Group, 0, len(f.CourseGroups)),
		GeneralCourses: make([]course.Entry, 0, len(f.GeneralCourses)),
		SkillKeywords:  make([]KeywordGroup, 0, len(f.SkillKeywords)),
	}

	ids := make(map[string]struct{}, len(f.Jobs))
	for i, j := range f.Jobs {
		id := strings.TrimSpace(j.ID)
		if id == "" {
			return Data{}, fmt.Errorf("%w: job #%d has an empty id", ErrInvalidCatalog, i+1)
		}
		if _, dup := ids[id]; dup {
			return Data{}, fmt.Errorf("%w: duplicate job id %s", ErrInvalidCatalog, id)
		}
		ids[id] = struct{}{}
		data.Jobs = append(data.Jobs, job.Profile{
			ID:               id,
			Title:            strings.TrimSpace(j.Title),
			Description:      strings.TrimSpace(j.Description),
			Skills:           j.Skills,
			Abilities:        j.Abilities,
			Knowledge:        j.Knowledge,
			WorkActivities:   j.WorkActivities,
			TechnologySkills: j.TechnologySkills,
		})
	}

	keys := make(map[string]struct{}, len(f.CourseGroups))
	for i, g := range f.CourseGroups {
		key := strings.ToLower(strings.TrimSpace(g.Key))
		if key == "" {
			return Data{}, fmt.Errorf("%w: course group #%d has an empty key", ErrInvalidCatalog, i+1)
		}
		if _, dup := keys[key]; dup {
			return Data{}, fmt.Errorf("%w: duplicate course group %q", ErrInvalidCatalog, key)
		}
		keys[key] = struct{}{}

		courses := make([]course.Entry, 0, len(g.Courses))
		for _, c := range g.Courses {
			entry, err := c.entry()
			if err != nil {
				return Data{}, fmt.Errorf("%w: course group %q: %w", ErrInvalidCatalog, key, err)
			}
			courses = append(courses, entry)
		}
		data.CourseGroups = append(data.CourseGroups, course.Group{Key: key, Courses: courses})
	}

	titles := make(map[string]struct{}, len(f.GeneralCourses))
	for _, c := range f.GeneralCourses {
		entry, err := c.entry()
		if err != nil {
			return Data{}, fmt.Errorf("%w: general courses: %w", ErrInvalidCatalog, err)
		}
		titles[entry.Title] = struct{}{}
		data.GeneralCourses = append(data.GeneralCourses, entry)
	}
	if len(titles) < MinGeneralCourses {
		return Data{}, fmt.Errorf("%w: need at least %d distinct general courses, got %d", ErrInvalidCatalog, MinGeneralCourses, len(titles))
	}

	for i, k := range f.SkillKeywords {
		category := strings.TrimSpace(k.Category)
		if category == "" {
			return Data{}, fmt.Errorf("%w: skill keyword group #%d has an empty category", ErrInvalidCatalog, i+1)
		}
		terms := make([]string, 0, len(k.Terms))
		for _, t := range k.Terms {
			if t = strings.TrimSpace(t); t != "" {
				terms = append(terms, t)
			}
		}
		data.SkillKeywords = append(data.SkillKeywords, KeywordGroup{Category: category, Terms: terms})
	}

	return data, nil
}

func (c courseRecord) entry() (course.Entry, error) {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return course.Entry{}, errors.New("course without title")
	}
	return course.Entry{
		Title:       title,
		Provider:    c.Provider,
		Rating:      c.Rating,
		Students:    c.Students,
		Duration:    c.Duration,
		Level:       c.Level,
		URL:         c.URL,
		Price:       c.Price,
		Description: c.Description,
	}, nil
}
