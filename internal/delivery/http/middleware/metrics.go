package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

// HTTPObserver records one finished request.
type HTTPObserver interface {
	ObserveHTTP(route, method string, status int, elapsed time.Duration)
}

type MetricsMiddleware struct {
	observer HTTPObserver
}

func NewMetricsMiddleware(observer HTTPObserver) *MetricsMiddleware {
	return &MetricsMiddleware{observer: observer}
}

func (m *MetricsMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if m == nil || m.observer == nil {
			return err
		}

		status := c.Response().StatusCode()
		if err != nil {
			status, _, _ = normalizeError(err)
		}

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		m.observer.ObserveHTTP(route, c.Method(), status, time.Since(start))
		return err
	}
}
