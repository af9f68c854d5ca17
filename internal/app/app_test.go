package app

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skill-match/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		App: config.AppConfig{
			AppName:        "skill-match-test",
			Environment:    "test",
			HTTPPort:       "0",
			RequestTimeout: 5 * time.Second,
		},
		Redis: config.RedisConfig{Enabled: false},
		Embedding: config.EmbeddingConfig{
			Provider:    config.EmbeddingProviderLocal,
			Timeout:     time.Second,
			Concurrency: 2,
		},
		Matching: config.MatchingConfig{
			SimilarityThreshold: 0.1,
			MinScore:            10,
			MaxResults:          5,
		},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	c, err := NewContainer(context.Background(), testConfig(), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	a := New(c)
	t.Cleanup(func() {
		a.limiter.Close()
		_ = c.Close()
	})
	return a
}

func call(t *testing.T, a *App, method, path, body string) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.Fiber.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw
}

func TestListenAddr(t *testing.T) {
	cases := map[string]string{"8080": ":8080", " :9090 ": ":9090"}
	for in, want := range cases {
		got, err := ListenAddr(in)
		if err != nil || got != want {
			t.Fatalf("ListenAddr(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ListenAddr("  "); err == nil {
		t.Fatal("expected error for empty port")
	}
}

func TestApp_MatchCreatesRetrievableSession(t *testing.T) {
	a := newTestApp(t)

	status, raw := call(t, a, "POST", "/api/v1/matches", `{"skills":["Programming","Python","Software Development"],"job_preference":"software developer"}`)
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, raw)
	}

	var out struct {
		Data struct {
			JobMatches []json.RawMessage `json:"job_matches"`
			SessionID  string            `json:"session_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Data.SessionID == "" {
		t.Fatalf("expected a session id, got %s", raw)
	}
	if len(out.Data.JobMatches) > 5 {
		t.Fatalf("expected at most 5 matches, got %d", len(out.Data.JobMatches))
	}

	status, raw = call(t, a, "GET", "/api/v1/sessions/"+out.Data.SessionID, "")
	if status != 200 || !strings.Contains(string(raw), `"Python"`) {
		t.Fatalf("expected stored session, got %d: %s", status, raw)
	}

	status, raw = call(t, a, "POST", "/api/v1/sessions/"+out.Data.SessionID+"/applications", `{"job_id":"13-2011.00"}`)
	if status != 201 || !strings.Contains(string(raw), `"job_title":"Financial Analyst"`) {
		t.Fatalf("expected recorded application, got %d: %s", status, raw)
	}

	status, raw = call(t, a, "GET", "/api/v1/sessions/"+out.Data.SessionID+"/stats", "")
	if status != 200 || !strings.Contains(string(raw), `"total_skills":3`) || !strings.Contains(string(raw), `"job_applications":1`) {
		t.Fatalf("unexpected stats %d: %s", status, raw)
	}
}

func TestApp_SkillGapAndCourses(t *testing.T) {
	a := newTestApp(t)

	status, raw := call(t, a, "POST", "/api/v1/skill-gap", `{"job_id":"15-1132.00","skills":["Python"]}`)
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, raw)
	}
	var out struct {
		Data struct {
			SkillGap struct {
				JobID string `json:"job_id"`
			} `json:"skill_gap"`
			RecommendedCourses []json.RawMessage `json:"recommended_courses"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Data.SkillGap.JobID != "15-1132.00" {
		t.Fatalf("unexpected report %s", raw)
	}
	if n := len(out.Data.RecommendedCourses); n < 3 || n > 5 {
		t.Fatalf("expected 3..5 courses, got %d", n)
	}

	if status, raw := call(t, a, "POST", "/api/v1/skill-gap", `{"job_id":"00-0000.00","skills":["Python"]}`); status != 404 {
		t.Fatalf("expected 404 for unknown job, got %d: %s", status, raw)
	}
}

func TestApp_CourseRecommendationsWithoutMissingSkills(t *testing.T) {
	a := newTestApp(t)

	for _, body := range []string{`{}`, `{"missing_skills":{}}`} {
		status, raw := call(t, a, "POST", "/api/v1/courses/recommendations", body)
		if status != 200 {
			t.Fatalf("%s: expected 200, got %d: %s", body, status, raw)
		}
		var out struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if len(out.Data) != 3 {
			t.Fatalf("%s: expected 3 backfilled courses, got %d", body, len(out.Data))
		}
	}
}

func TestApp_CatalogEndpoints(t *testing.T) {
	a := newTestApp(t)

	status, raw := call(t, a, "GET", "/api/v1/jobs", "")
	if status != 200 || !strings.Contains(string(raw), `"catalog_version":"2024.1"`) {
		t.Fatalf("unexpected jobs response %d: %s", status, raw)
	}

	status, raw = call(t, a, "GET", "/api/v1/skills/suggestions?q=prog", "")
	if status != 200 || !strings.Contains(string(raw), "Programming") {
		t.Fatalf("unexpected suggestions %d: %s", status, raw)
	}

	status, raw = call(t, a, "POST", "/api/v1/skills/extract", `{"text":"Senior engineer. Skills: Python, Kubernetes\n• TensorFlow\nWrote JavaScript daily"}`)
	if status != 200 || !strings.Contains(string(raw), `"skills":["JavaScript","Kubernetes","Python","TensorFlow"]`) {
		t.Fatalf("unexpected extraction %d: %s", status, raw)
	}

	status, raw = call(t, a, "GET", "/api/v1/courses/search?q=python", "")
	if status != 200 || !strings.Contains(strings.ToLower(string(raw)), "python") {
		t.Fatalf("unexpected search %d: %s", status, raw)
	}
}

func TestApp_HealthAndMetrics(t *testing.T) {
	a := newTestApp(t)

	status, raw := call(t, a, "GET", "/health", "")
	if status != 200 || !strings.Contains(string(raw), `"database":"disabled"`) {
		t.Fatalf("unexpected health %d: %s", status, raw)
	}

	call(t, a, "GET", "/api/v1/jobs", "")

	status, raw = call(t, a, "GET", "/metrics", "")
	if status != 200 {
		t.Fatalf("expected 200 from metrics, got %d", status)
	}
	body := string(raw)
	if !strings.Contains(body, "skillmatch_catalog_jobs 5") {
		t.Fatalf("expected catalog gauge in metrics output")
	}
	if !strings.Contains(body, "skillmatch_http_requests_total") {
		t.Fatalf("expected http counter in metrics output")
	}
}
