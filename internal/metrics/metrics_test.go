package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skill-match/internal/embedding"
)

var _ embedding.Observer = (*Metrics)(nil)

func TestMetrics_CountsEmbeddingOutcomes(t *testing.T) {
	m := New()
	m.ObserveEmbedding("local", embedding.OutcomeOK, 10*time.Millisecond)
	m.ObserveEmbedding("local", embedding.OutcomeOK, 20*time.Millisecond)
	m.ObserveEmbedding("local", embedding.OutcomeTimeout, time.Second)

	body := scrape(t, m)
	for _, want := range []string{
		`skillmatch_embedding_calls_total{outcome="ok",provider="local"} 2`,
		`skillmatch_embedding_calls_total{outcome="timeout",provider="local"} 1`,
		`skillmatch_embedding_duration_seconds_count{provider="local"} 3`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics output", want)
		}
	}
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("expected 200 from metrics handler, got %d", rec.Code)
	}
	return rec.Body.String()
}

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveHTTP("/api/v1/matches", "POST", 200, 5*time.Millisecond)
	m.SetCatalogJobs(5)
	m.SessionPersistFailed()

	body := scrape(t, m)
	for _, want := range []string{
		`skillmatch_http_requests_total{method="POST",route="/api/v1/matches",status="200"} 1`,
		"skillmatch_catalog_jobs 5",
		"skillmatch_session_persist_failures_total 1",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics output", want)
		}
	}
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveHTTP("/", "GET", 200, time.Millisecond)
	m.ObserveEmbedding("local", embedding.OutcomeOK, time.Millisecond)
	m.ObserveResults("match", 3)
	m.SetCatalogJobs(1)
	m.SessionPersistFailed()
}

func TestMetrics_RegisterDBWithoutHandle(t *testing.T) {
	if err := New().RegisterDB(nil); err != nil {
		t.Fatalf("expected nil handle to be ignored, got %v", err)
	}
}
