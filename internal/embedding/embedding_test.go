package embedding

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"sync"
	"testing"
	"time"
)

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func TestLocal_DeterministicAndNormalized(t *testing.T) {
	l := NewLocal(128)
	a, err := l.Embed(context.Background(), "Python SQL Docker")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, _ := l.Embed(context.Background(), "Python SQL Docker")
	if len(a) != 128 {
		t.Fatalf("expected dimension 128, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical vectors at %d", i)
		}
	}
	if got := cosine(a, a); math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected unit self similarity, got %f", got)
	}
}

func TestLocal_SharedVocabularyIsCloser(t *testing.T) {
	l := NewLocal(0)
	ctx := context.Background()
	user, _ := l.Embed(ctx, "python sql machine learning")
	near, _ := l.Embed(ctx, "Machine Learning Python Statistics SQL")
	far, _ := l.Embed(ctx, "Marketing Strategy SEO Campaign Management")

	if cosine(user, near) <= cosine(user, far) {
		t.Fatalf("expected overlapping text to be closer: near=%f far=%f", cosine(user, near), cosine(user, far))
	}
}

func TestLocal_EmptyTextIsZeroVector(t *testing.T) {
	vec, err := NewLocal(16).Embed(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, v := range vec {
		if v != 0 {
			t.Fatalf("expected zero vector")
		}
	}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingObserver) ObserveEmbedding(_, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func TestGuard_TimeoutIsDistinct(t *testing.T) {
	slow := ProviderFunc(func(ctx context.Context, _ string) ([]float64, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	obs := &recordingObserver{}
	g := NewGuard(slow, GuardConfig{Name: "slow", Timeout: 10 * time.Millisecond}, obs, quietLogger())

	_, err := g.Embed(context.Background(), "python")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected timeout to also be ErrUnavailable, got %v", err)
	}
	if len(obs.outcomes) != 1 || obs.outcomes[0] != OutcomeTimeout {
		t.Fatalf("unexpected outcomes: %v", obs.outcomes)
	}
}

func TestGuard_CallerCancellationPassesThrough(t *testing.T) {
	blocking := ProviderFunc(func(ctx context.Context, _ string) ([]float64, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	obs := &recordingObserver{}
	g := NewGuard(blocking, GuardConfig{Name: "blocking", Timeout: time.Minute}, obs, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Embed(ctx, "python")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrTimeout) {
		t.Fatalf("expected cancellation not to look like an outage, got %v", err)
	}
	if len(obs.outcomes) != 1 || obs.outcomes[0] != OutcomeCanceled {
		t.Fatalf("unexpected outcomes: %v", obs.outcomes)
	}
}

func TestGuard_BreakerOpensAfterFailures(t *testing.T) {
	calls := 0
	failing := ProviderFunc(func(context.Context, string) ([]float64, error) {
		calls++
		return nil, errors.New("model offline")
	})
	g := NewGuard(failing, GuardConfig{
		Name: "failing",
		Breaker: BreakerConfig{
			Enabled:     true,
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     time.Minute,
			MinRequests: 2,
			FailureRate: 0.5,
		},
	}, nil, quietLogger())

	for i := 0; i < 2; i++ {
		if _, err := g.Embed(context.Background(), "x"); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	}
	if g.State() != "open" {
		t.Fatalf("expected open breaker, got %s", g.State())
	}

	_, err := g.Embed(context.Background(), "x")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable while open, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected open breaker to short-circuit, provider called %d times", calls)
	}
}

func TestGuard_RejectsEmptyVector(t *testing.T) {
	empty := ProviderFunc(func(context.Context, string) ([]float64, error) { return nil, nil })
	g := NewGuard(empty, GuardConfig{Name: "empty"}, nil, quietLogger())

	if _, err := g.Embed(context.Background(), "x"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]float64
	sets int
}

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return false, nil
	}
	*(out.(*[]float64)) = append([]float64(nil), v...)
	return true, nil
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]float64{}
	}
	m.data[key] = value.([]float64)
	m.sets++
	return nil
}

func TestCached_ReusesVectorForSameText(t *testing.T) {
	calls := 0
	base := ProviderFunc(func(_ context.Context, text string) ([]float64, error) {
		calls++
		return []float64{float64(len(text)), 1}, nil
	})
	cache := &memCache{}
	c := NewCached(base, cache, "test", time.Minute, quietLogger())
	ctx := context.Background()

	first, err := c.Embed(ctx, "python")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, _ := c.Embed(ctx, "python")
	if calls != 1 {
		t.Fatalf("expected one provider call, got %d", calls)
	}
	if first[0] != second[0] {
		t.Fatalf("expected cached vector")
	}

	if _, err := c.Embed(ctx, "python sql"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected changed text to be re-embedded, got %d calls", calls)
	}
}

func TestCached_DoesNotStoreFailures(t *testing.T) {
	base := ProviderFunc(func(context.Context, string) ([]float64, error) {
		return nil, ErrUnavailable
	})
	cache := &memCache{}
	c := NewCached(base, cache, "test", time.Minute, quietLogger())

	if _, err := c.Embed(context.Background(), "python"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if cache.sets != 0 {
		t.Fatalf("expected no cache writes, got %d", cache.sets)
	}
}
