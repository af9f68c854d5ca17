package middleware

import (
	"log"
	"sync"
	"time"

	"skill-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP and evicts idle buckets.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	rate     rate.Limit
	burst    int
	done     chan struct{}
	once     sync.Once
	logger   *log.Logger
}

// NewRateLimiter allows requestsPerMin per client with the given burst.
// requestsPerMin <= 0 disables limiting.
func NewRateLimiter(requestsPerMin, burst int, logger *log.Logger) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	m := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
		done:     make(chan struct{}),
		logger:   logger,
	}
	if requestsPerMin <= 0 {
		m.rate = rate.Inf
	}

	go m.cleanupRoutine(10 * time.Minute)
	return m
}

func (m *RateLimiter) limiter(key string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.limiters[key]
	if !ok {
		l = rate.NewLimiter(m.rate, m.burst)
		m.limiters[key] = l
	}
	m.lastSeen[key] = time.Now()
	return l
}

func (m *RateLimiter) Allow(key string) bool {
	return m.limiter(key).Allow()
}

func (m *RateLimiter) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.rate == rate.Inf {
			return c.Next()
		}
		ip := c.IP()
		if !m.Allow(ip) {
			if m.logger != nil {
				m.logger.Printf("[HTTP] rate limit exceeded ip=%s path=%s", ip, c.Path())
			}
			c.Set("Retry-After", "60")
			return NewAppError(fiber.StatusTooManyRequests, response.MessageTooManyRequests, nil, nil)
		}
		return c.Next()
	}
}

func (m *RateLimiter) cleanupRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup(interval)
		case <-m.done:
			return
		}
	}
}

func (m *RateLimiter) cleanup(evictionAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for key, seen := range m.lastSeen {
		if now.Sub(seen) > evictionAge {
			delete(m.limiters, key)
			delete(m.lastSeen, key)
		}
	}
}

func (m *RateLimiter) Close() {
	if m == nil {
		return
	}
	m.once.Do(func() { close(m.done) })
}
