package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"skill-match/internal/config"
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/delivery/http/routes"
	v1 "skill-match/internal/delivery/http/routes/v1"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	bootstrapTimeout       = 2 * time.Minute
	sessionCleanupInterval = time.Hour
)

type App struct {
	Fiber     *fiber.App
	Container *Container

	limiter  *middleware.RateLimiter
	sessions *usecase.Session
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	a := &App{
		Fiber:     f,
		Container: c,
		limiter:   middleware.NewRateLimiter(c.Config.RateLimit.RequestsPerMinute, c.Config.RateLimit.Burst, c.Logger),
		sessions:  usecase.NewSessionUsecase(c.Sessions, c.Catalog, c.Logger),
	}

	a.registerGlobalMiddleware()
	a.registerRoutes()

	return a
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancel()

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	a := New(c)
	stopCleanup := a.startSessionCleanup(cfg.App.SessionRetention)

	cleanup := func() error {
		stopCleanup()
		a.limiter.Close()
		return c.Close()
	}
	return a, cleanup, nil
}

func (a *App) registerGlobalMiddleware() {
	logger := a.Container.Logger

	a.Fiber.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	a.Fiber.Use(middleware.NewErrorMiddleware(logger).Middleware())
	a.Fiber.Use(middleware.NewMetricsMiddleware(a.Container.Metrics).Middleware())
	a.Fiber.Use(a.limiter.Middleware())
}

func (a *App) registerRoutes() {
	c := a.Container
	timeout := c.Config.App.RequestTimeout

	matchUC := usecase.NewMatchUsecase(c.Engine, c.Sessions, c.Metrics, c.Logger)
	skillGapUC := usecase.NewSkillGapUsecase(c.Engine, c.Courses, c.Sessions, c.Metrics, c.Logger)
	courseUC := usecase.NewCourseUsecase(c.Courses, c.Metrics)
	skillUC := usecase.NewSkillUsecase(c.Engine, c.Extractor, c.Redis, c.Config.Redis.TTL, c.Logger)
	jobUC := usecase.NewJobUsecase(c.Catalog)

	health := handler.NewHealthHandler(handler.HealthOptions{
		DB:             dbPinger(c),
		Cache:          cachePinger(c),
		CatalogVersion: c.Catalog.Version(),
		CatalogJobs:    c.Catalog.Len(),
		BreakerState:   c.Guard.State,
	})

	routes.NewRegistry(health, c.Metrics.Handler(), v1.Handlers{
		Match:    handler.NewMatchHandler(matchUC, timeout),
		SkillGap: handler.NewSkillGapHandler(skillGapUC, timeout),
		Sessions: handler.NewSessionHandler(a.sessions),
		Jobs:     handler.NewJobsHandler(jobUC),
		Skills:   handler.NewSkillHandler(skillUC),
		Courses:  handler.NewCourseHandler(courseUC),
	}).Register(a.Fiber)
}

func dbPinger(c *Container) handler.Pinger {
	if c.DB == nil {
		return nil
	}
	return c.DB
}

func cachePinger(c *Container) handler.Pinger {
	if !c.Redis.Available() {
		return nil
	}
	return c.Redis
}

// startSessionCleanup deletes sessions older than retention once an hour.
// A non-positive retention keeps sessions forever.
func (a *App) startSessionCleanup(retention time.Duration) func() {
	if retention <= 0 {
		return func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(sessionCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_, _ = a.sessions.Cleanup(ctx, retention)
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
