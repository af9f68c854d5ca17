package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Task receives the pool context; it is cancelled when the pool stops early.
type Task func(ctx context.Context) error

type Result struct {
	ID  int
	Err error
}

type Pool struct {
	workers int
	tasks   chan job
	wg      sync.WaitGroup
	mu      sync.RWMutex
	limiter *rate.Limiter
	nextID  int
}

type job struct {
	id   int
	task Task
}

func NewPool(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan job, buffer),
	}
}

// SetRateLimit caps task starts per second across all workers. rps <= 0 removes the cap.
func (p *Pool) SetRateLimit(rps float64, burst int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if rps <= 0 {
		p.limiter = nil
		return
	}
	if burst <= 0 {
		burst = 1
	}
	p.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// Submit queues a task and returns its id. It blocks when the buffer is full.
func (p *Pool) Submit(t Task) int {
	if p == nil || t == nil {
		return -1
	}
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.mu.Unlock()
	p.tasks <- job{id: id, task: t}
	return id
}

func (p *Pool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

// Run starts the workers. The result channel closes once every worker exits,
// which happens after Close drains the queue or ctx is done.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-p.tasks:
					if !ok {
						return
					}
					p.mu.RLock()
					lim := p.limiter
					p.mu.RUnlock()
					if lim != nil {
						if err := lim.Wait(ctx); err != nil {
							return
						}
					}
					err := j.task(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{ID: j.id, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}

// ForEach runs fn for indexes 0..n-1 on a pool of the given size and returns
// the first error. Remaining work is cancelled as soon as one call fails.
func ForEach(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	return ForEachLimited(ctx, n, workers, 0, fn)
}

// ForEachLimited is ForEach with task starts capped at rps per second.
func ForEachLimited(ctx context.Context, n, workers int, rps float64, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return ctx.Err()
	}
	if workers > n {
		workers = n
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewPool(workers, n)
	pool.SetRateLimit(rps, workers)
	for i := 0; i < n; i++ {
		idx := i
		pool.Submit(func(ctx context.Context) error { return fn(ctx, idx) })
	}
	pool.Close()

	var first error
	for res := range pool.Run(runCtx) {
		if res.Err != nil && first == nil {
			first = res.Err
			cancel()
		}
	}
	if first != nil {
		return first
	}
	return ctx.Err()
}
