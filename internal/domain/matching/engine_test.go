package matching

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"testing"

	"skill-match/internal/domain/job"
	"skill-match/internal/embedding"
)

type fakeCatalog struct {
	profiles []job.Profile
	vectors  map[string][]float64
}

func (c fakeCatalog) Get(id string) (job.Profile, bool) {
	for _, p := range c.profiles {
		if p.ID == id {
			return p, true
		}
	}
	return job.Profile{}, false
}

func (c fakeCatalog) All() []job.Profile { return c.profiles }

func (c fakeCatalog) Embedding(id string) (job.Embedding, bool) {
	v, ok := c.vectors[id]
	if !ok {
		return job.Embedding{}, false
	}
	return job.Embedding{JobID: id, Vector: v}, true
}

// stubProvider returns fixed vectors per text and a fallback for anything else.
type stubProvider struct {
	mu       sync.Mutex
	vectors  map[string][]float64
	fallback []float64
	err      error
	calls    map[string]int
}

func (s *stubProvider) Embed(_ context.Context, text string) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[text]++
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return s.fallback, nil
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func softwareDeveloper() job.Profile {
	return job.Profile{
		ID:               "15-1132.00",
		Title:            "Software Developer",
		Description:      "Research, design, and develop computer and network software.",
		Skills:           []string{"Programming", "Software Development", "Java", "Python", "JavaScript", "React", "Node.js", "SQL", "Git", "Agile Methodologies"},
		Abilities:        []string{"Problem Solving", "Analytical Thinking", "Attention to Detail", "Communication", "Teamwork"},
		Knowledge:        []string{"Computer Science", "Software Engineering", "Database Systems", "Web Development", "System Design"},
		WorkActivities:   []string{"Analyzing Information", "Thinking Creatively", "Working with Computers", "Communicating with Others"},
		TechnologySkills: []string{"React", "Angular", "Docker", "AWS", "Kubernetes", "Machine Learning", "APIs"},
	}
}

func TestCosine(t *testing.T) {
	if got := Cosine([]float64{1, 0}, []float64{1, 0}); !approx(got, 1) {
		t.Fatalf("expected 1, got %f", got)
	}
	if got := Cosine([]float64{1, 0}, []float64{0, 1}); !approx(got, 0) {
		t.Fatalf("expected 0, got %f", got)
	}
	if got := Cosine([]float64{1, 0}, []float64{-1, 0}); !approx(got, -1) {
		t.Fatalf("expected -1, got %f", got)
	}
	if got := Cosine([]float64{0, 0}, []float64{1, 1}); got != 0 {
		t.Fatalf("expected zero-norm similarity 0, got %f", got)
	}
}

func TestWeightedScore_OnlySkillsCategoryAtFullSimilarity(t *testing.T) {
	p := job.Profile{ID: "j1", Title: "Dev", Skills: []string{"Python", "SQL"}}
	prov := &stubProvider{vectors: map[string][]float64{
		"Go Rust":    {1, 0},
		"Python SQL": {1, 0},
	}, fallback: []float64{0, 1}}
	e := NewEngine(fakeCatalog{profiles: []job.Profile{p}}, prov, DefaultOptions())

	score, err := e.WeightedScore(context.Background(), SkillSet{"Go", "Rust"}, p)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !approx(score, 30.0) {
		t.Fatalf("expected 30.0, got %f", score)
	}
}

func TestWeightedScore_NegativeSimilarityContributesZero(t *testing.T) {
	p := job.Profile{
		ID:        "j1",
		Skills:    []string{"Python"},
		Knowledge: []string{"Statistics"},
	}
	prov := &stubProvider{vectors: map[string][]float64{
		"Go":         {1, 0},
		"Python":     {-1, 0},
		"Statistics": {1, 0},
	}}
	e := NewEngine(fakeCatalog{profiles: []job.Profile{p}}, prov, DefaultOptions())

	score, err := e.WeightedScore(context.Background(), SkillSet{"Go"}, p)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !approx(score, 20.0) {
		t.Fatalf("expected only knowledge (0.20) to contribute, got %f", score)
	}
}

func TestWeightedScore_AllCategoriesSumToHundred(t *testing.T) {
	p := softwareDeveloper()
	same := []float64{0.3, 0.4, 0.5}
	prov := &stubProvider{fallback: same}
	e := NewEngine(fakeCatalog{profiles: []job.Profile{p}}, prov, DefaultOptions())

	score, err := e.WeightedScore(context.Background(), SkillSet{"Python"}, p)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !approx(score, 100.0) {
		t.Fatalf("expected 100, got %f", score)
	}
}

func rankingCatalog() (fakeCatalog, *stubProvider) {
	profiles := make([]job.Profile, 0, 7)
	vectors := map[string][]float64{}
	for i, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		p := job.Profile{ID: name, Title: strings.ToUpper(name), Skills: []string{"skill-" + name}}
		profiles = append(profiles, p)
		// decreasing similarity to the user vector {1,0}
		angle := float64(i) * 0.2
		vectors[name] = []float64{math.Cos(angle), math.Sin(angle)}
	}
	prov := &stubProvider{
		vectors: map[string][]float64{
			"python":         {1, 0},
			"python backend": {1, 0},
		},
		fallback: []float64{0, 1},
	}
	return fakeCatalog{profiles: profiles, vectors: vectors}, prov
}

func TestFindMatches_CapsAndOrdersResults(t *testing.T) {
	cat, prov := rankingCatalog()
	e := NewEngine(cat, prov, DefaultOptions())

	res, err := e.FindMatches(context.Background(), SkillSet{"python"}, "backend")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res) != 5 {
		t.Fatalf("expected 5 results, got %d", len(res))
	}
	for i := 1; i < len(res); i++ {
		if RankKey(res[i-1].Score, res[i-1].Similarity) < RankKey(res[i].Score, res[i].Similarity) {
			t.Fatalf("results not ordered at %d", i)
		}
	}
	for _, r := range res {
		if r.Similarity < 0.1 && r.Score < 10.0 {
			t.Fatalf("result %s violates inclusion rule", r.JobID)
		}
	}
	if res[0].JobID != "a" {
		t.Fatalf("expected closest job first, got %s", res[0].JobID)
	}
}

func TestFindMatches_InclusionRuleFiltersWeakJobs(t *testing.T) {
	p := job.Profile{ID: "far", Title: "Far", Skills: []string{"Welding"}}
	cat := fakeCatalog{profiles: []job.Profile{p}, vectors: map[string][]float64{"far": {0, 1}}}
	prov := &stubProvider{vectors: map[string][]float64{"python": {1, 0}, "Welding": {0, 1}}}
	e := NewEngine(cat, prov, DefaultOptions())

	res, err := e.FindMatches(context.Background(), SkillSet{"python"}, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res) != 0 {
		t.Fatalf("expected no matches, got %d", len(res))
	}
}

func TestFindMatches_StableTieBreakByCatalogOrder(t *testing.T) {
	profiles := []job.Profile{
		{ID: "first", Title: "First"},
		{ID: "second", Title: "Second"},
		{ID: "third", Title: "Third"},
	}
	vecs := map[string][]float64{"first": {1, 0}, "second": {1, 0}, "third": {1, 0}}
	prov := &stubProvider{fallback: []float64{1, 0}}
	e := NewEngine(fakeCatalog{profiles: profiles, vectors: vecs}, prov, DefaultOptions())

	res, err := e.FindMatches(context.Background(), SkillSet{"x"}, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := []string{res[0].JobID, res[1].JobID, res[2].JobID}
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected catalog order %v, got %v", want, got)
		}
	}
}

func TestFindMatches_EmptySkillsIsInvalidInput(t *testing.T) {
	cat, prov := rankingCatalog()
	e := NewEngine(cat, prov, DefaultOptions())

	_, err := e.FindMatches(context.Background(), SkillSet{"  ", ""}, "backend")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFindMatches_EmbeddingFailureFailsWholeCall(t *testing.T) {
	cat, _ := rankingCatalog()
	prov := &stubProvider{err: errors.New("model not loaded")}
	e := NewEngine(cat, prov, DefaultOptions())

	res, err := e.FindMatches(context.Background(), SkillSet{"python"}, "")
	if !errors.Is(err, embedding.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected no partial results")
	}
}

func TestFindMatches_EmbedsUserTextOncePerRequest(t *testing.T) {
	cat, prov := rankingCatalog()
	e := NewEngine(cat, prov, DefaultOptions())

	if _, err := e.FindMatches(context.Background(), SkillSet{"python"}, ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if prov.calls["python"] != 1 {
		t.Fatalf("expected user text embedded once, got %d", prov.calls["python"])
	}
}

func TestFindMatches_AttachesSkillsMatchAndMissing(t *testing.T) {
	p := softwareDeveloper()
	cat := fakeCatalog{profiles: []job.Profile{p}, vectors: map[string][]float64{p.ID: {1, 0}}}
	prov := &stubProvider{fallback: []float64{1, 0}}
	e := NewEngine(cat, prov, DefaultOptions())

	res, err := e.FindMatches(context.Background(), SkillSet{"python", "SQL", "Docker"}, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res) != 1 {
		t.Fatalf("expected 1 result, got %d", len(res))
	}
	sm := res[0].SkillsMatch
	if len(sm.MatchedSkills) != 2 || sm.MatchedSkills[0] != "Python" || sm.MatchedSkills[1] != "SQL" {
		t.Fatalf("unexpected matched skills: %v", sm.MatchedSkills)
	}
	if !approx(sm.MatchPercentage, 2.0/float64(len(p.Skills))*100) {
		t.Fatalf("unexpected match percentage: %f", sm.MatchPercentage)
	}
	for _, tech := range res[0].MissingSkills[job.CategoryTechnologySkills] {
		if tech == "Docker" {
			t.Fatalf("Docker should not be missing")
		}
	}
}

func TestMatchSkills_NoRequirements(t *testing.T) {
	sm := MatchSkills(SkillSet{"Go"}, nil)
	if sm.MatchPercentage != 0 || sm.TotalRequired != 0 || len(sm.MatchedSkills) != 0 {
		t.Fatalf("unexpected match for empty requirements: %+v", sm)
	}
}

func TestMissingSkills_IsCaseInsensitiveSetDifference(t *testing.T) {
	p := softwareDeveloper()
	user := SkillSet{" java ", "COMMUNICATION", "system design", "aws", "Unrelated"}

	missing := MissingSkills(user, p)
	if len(missing) != len(GapCategories) {
		t.Fatalf("expected %d categories, got %d", len(GapCategories), len(missing))
	}

	have := user.Lookup()
	for _, cat := range GapCategories {
		items, _ := p.Category(cat)
		var want []string
		for _, it := range items {
			if _, ok := have[Normalize(it)]; !ok {
				want = append(want, it)
			}
		}
		got := missing[cat]
		if len(got) != len(want) {
			t.Fatalf("%s: expected %v, got %v", cat, want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%s: expected %v, got %v", cat, want, got)
			}
		}
	}
	if _, ok := missing[job.CategoryWorkActivities]; ok {
		t.Fatalf("work activities are not a gap category")
	}
}

func TestAnalyzeSkillGap_UnknownJob(t *testing.T) {
	e := NewEngine(fakeCatalog{}, &stubProvider{fallback: []float64{1}}, DefaultOptions())

	_, err := e.AnalyzeSkillGap(context.Background(), "99-9999.00", SkillSet{"Python"})
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}

	_, err = e.AnalyzeSkillGap(context.Background(), "99-9999.00", nil)
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for empty skills too, got %v", err)
	}
}

func TestAnalyzeSkillGap_Report(t *testing.T) {
	p := softwareDeveloper()
	cat := fakeCatalog{profiles: []job.Profile{p}, vectors: map[string][]float64{p.ID: {1, 0}}}
	prov := &stubProvider{fallback: []float64{1, 0}}
	e := NewEngine(cat, prov, DefaultOptions())

	rep, err := e.AnalyzeSkillGap(context.Background(), p.ID, SkillSet{"Python", "SQL", "Docker"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.JobTitle != "Software Developer" {
		t.Fatalf("unexpected title %q", rep.JobTitle)
	}
	if !approx(rep.CurrentScore, 100) || !rep.Qualifies {
		t.Fatalf("expected full score and qualification, got %f %v", rep.CurrentScore, rep.Qualifies)
	}
	if rep.QualificationThreshold != 10.0 {
		t.Fatalf("unexpected threshold %f", rep.QualificationThreshold)
	}
	want := []string{"React", "Angular", "Docker", "AWS", "Kubernetes"}
	if len(rep.HotTechnologies) != len(want) {
		t.Fatalf("expected %v, got %v", want, rep.HotTechnologies)
	}
	for i := range want {
		if rep.HotTechnologies[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, rep.HotTechnologies)
		}
	}
}

func TestAnalyzeSkillGap_BelowThresholdDoesNotQualify(t *testing.T) {
	p := job.Profile{ID: "j", Title: "J", Skills: []string{"Welding"}}
	prov := &stubProvider{vectors: map[string][]float64{"Python": {1, 0}, "Welding": {0, 1}}}
	e := NewEngine(fakeCatalog{profiles: []job.Profile{p}}, prov, DefaultOptions())

	rep, err := e.AnalyzeSkillGap(context.Background(), "j", SkillSet{"Python"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Qualifies || rep.CurrentScore != 0 {
		t.Fatalf("expected not qualified with zero score, got %+v", rep)
	}
	if len(rep.HotTechnologies) != 0 {
		t.Fatalf("expected no hot technologies")
	}
}

func TestSkillSuggestions(t *testing.T) {
	ds := job.Profile{ID: "ds", Skills: []string{"Python", "Pandas"}, TechnologySkills: []string{"PyTorch", "Scikit-learn"}}
	e := NewEngine(fakeCatalog{profiles: []job.Profile{softwareDeveloper(), ds}}, &stubProvider{}, DefaultOptions())

	got := e.SkillSuggestions("pyt")
	want := []string{"PyTorch", "Python"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	all := e.SkillSuggestions("")
	if len(all) != 10 {
		t.Fatalf("expected cap of 10, got %d", len(all))
	}
	if !sort.StringsAreSorted(all) {
		t.Fatalf("expected sorted suggestions: %v", all)
	}
}
