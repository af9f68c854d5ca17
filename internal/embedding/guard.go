package embedding

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Observer receives one call per guarded embedding request.
type Observer interface {
	ObserveEmbedding(provider, outcome string, elapsed time.Duration)
}

const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeTimeout     = "timeout"
	OutcomeBreakerOpen = "breaker_open"
	OutcomeCanceled    = "canceled"
)

type BreakerConfig struct {
	Enabled     bool
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	MinRequests uint32
	FailureRate float64
}

type GuardConfig struct {
	Name    string
	Timeout time.Duration
	Breaker BreakerConfig
}

// Guard bounds every call to the wrapped provider with a timeout and a
// circuit breaker, and normalizes failures to ErrUnavailable / ErrTimeout.
type Guard struct {
	next     Provider
	name     string
	timeout  time.Duration
	cb       *gobreaker.CircuitBreaker[[]float64]
	observer Observer
	logger   *log.Logger
}

func NewGuard(next Provider, cfg GuardConfig, observer Observer, logger *log.Logger) *Guard {
	if logger == nil {
		logger = log.Default()
	}
	name := cfg.Name
	if name == "" {
		name = "embedding"
	}

	g := &Guard{
		next:     next,
		name:     name,
		timeout:  cfg.Timeout,
		observer: observer,
		logger:   logger,
	}

	if cfg.Breaker.Enabled {
		bc := cfg.Breaker
		g.cb = gobreaker.NewCircuitBreaker[[]float64](gobreaker.Settings{
			Name:        "Embedding-" + name,
			MaxRequests: bc.MaxRequests,
			Interval:    bc.Interval,
			Timeout:     bc.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests == 0 {
					return false
				}
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= bc.MinRequests && failureRatio >= bc.FailureRate
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(cbName string, from gobreaker.State, to gobreaker.State) {
				logger.Printf("[Embedding] circuit breaker state changed name=%s from=%s to=%s", cbName, from.String(), to.String())
			},
		})
	}

	return g
}

func (g *Guard) Embed(ctx context.Context, text string) ([]float64, error) {
	start := time.Now()

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	call := func() ([]float64, error) {
		vec, err := g.next.Embed(callCtx, text)
		if err != nil {
			return nil, err
		}
		if len(vec) == 0 {
			return nil, errors.New("empty vector")
		}
		return vec, nil
	}

	var vec []float64
	var err error
	if g.cb != nil {
		vec, err = g.cb.Execute(call)
	} else {
		vec, err = call()
	}

	outcome := OutcomeOK
	if err != nil {
		outcome, err = g.classify(callCtx, err)
	}
	if g.observer != nil {
		g.observer.ObserveEmbedding(g.name, outcome, time.Since(start))
	}
	return vec, err
}

// State reports the breaker state, "disabled" when no breaker is configured.
func (g *Guard) State() string {
	if g == nil || g.cb == nil {
		return "disabled"
	}
	return g.cb.State().String()
}

func (g *Guard) classify(ctx context.Context, err error) (string, error) {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return OutcomeBreakerOpen, fmt.Errorf("%w: %s: %w", ErrUnavailable, g.name, err)
	case errors.Is(err, context.Canceled), errors.Is(ctx.Err(), context.Canceled):
		return OutcomeCanceled, err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return OutcomeTimeout, fmt.Errorf("%w: %w: %s after %s", ErrUnavailable, ErrTimeout, g.name, g.timeout)
	default:
		return OutcomeError, unavailable(g.name, err)
	}
}
