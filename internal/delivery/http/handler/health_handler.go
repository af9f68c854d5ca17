package handler

import (
	"context"
	"time"

	"skill-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthOptions struct {
	DB             Pinger
	Cache          Pinger
	CatalogVersion string
	CatalogJobs    int
	BreakerState   func() string
	PingTimeout    time.Duration
}

type HealthHandler struct {
	opts HealthOptions
}

type healthResponse struct {
	Status         string `json:"status"`
	CatalogVersion string `json:"catalog_version"`
	CatalogJobs    int    `json:"catalog_jobs"`
	Embedding      string `json:"embedding_breaker"`
	Database       string `json:"database"`
	Cache          string `json:"cache"`
}

func NewHealthHandler(opts HealthOptions) *HealthHandler {
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = 2 * time.Second
	}
	return &HealthHandler{opts: opts}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health always answers 200 while the catalog is loaded; a failing database
// or cache only marks the service as degraded.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.opts.PingTimeout)
	defer cancel()

	out := healthResponse{
		Status:         "ok",
		CatalogVersion: h.opts.CatalogVersion,
		CatalogJobs:    h.opts.CatalogJobs,
		Embedding:      "disabled",
		Database:       pingStatus(ctx, h.opts.DB),
		Cache:          pingStatus(ctx, h.opts.Cache),
	}
	if h.opts.BreakerState != nil {
		out.Embedding = h.opts.BreakerState()
	}
	if out.Database == "down" || out.Cache == "down" || out.Embedding == "open" {
		out.Status = "degraded"
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func pingStatus(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
