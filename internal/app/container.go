package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"skill-match/internal/catalog"
	"skill-match/internal/config"
	"skill-match/internal/database"
	"skill-match/internal/database/migration"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/internal/domain/course"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/skill"
	"skill-match/internal/embedding"
	"skill-match/internal/infrastructure/cache"
	"skill-match/internal/metrics"
	"skill-match/internal/repository"
)

// Container owns every long-lived dependency of the service.
type Container struct {
	Config    config.Config
	Logger    *log.Logger
	DB        database.DB
	Redis     *cache.Redis
	Metrics   *metrics.Metrics
	Guard     *embedding.Guard
	Provider  embedding.Provider
	Catalog   *catalog.Store
	Engine    *matching.Engine
	Courses   *course.Matcher
	Extractor *skill.Extractor
	Sessions  repository.SessionRepository
}

// NewContainer connects the stores, embeds the catalog and builds the
// engines. A catalog that cannot be embedded fails startup.
func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	c := &Container{Config: cfg, Logger: logger}
	c.Metrics = metrics.New()
	c.Redis = cache.NewRedis(cfg.Redis, logger)

	raw, err := embedding.New(ctx, cfg.Embedding)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("embedding provider: %w", err)
	}
	c.Guard = embedding.NewGuard(raw, embedding.GuardConfigFrom(cfg.Embedding), c.Metrics, logger)
	c.Provider = embedding.NewCached(c.Guard, c.Redis, embedding.Namespace(cfg.Embedding), cfg.Redis.TTL, logger)

	data, err := loadCatalog(cfg.Catalog)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Catalog, err = catalog.Bootstrap(ctx, data, c.Provider, catalog.BootstrapOptions{
		Concurrency:       cfg.Embedding.Concurrency,
		RequestsPerSecond: cfg.Embedding.RequestsPerSecond,
		Logger:            logger,
	})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("catalog bootstrap: %w", err)
	}
	c.Metrics.SetCatalogJobs(c.Catalog.Len())
	if err := c.Redis.SyncCatalogVersion(ctx, c.Catalog.Version()); err != nil {
		logger.Printf("[Cache] catalog version sync failed version=%s err=%v", c.Catalog.Version(), err)
	}

	c.Engine = matching.NewEngine(c.Catalog, c.Provider, matching.Options{
		SimilarityThreshold: cfg.Matching.SimilarityThreshold,
		MinScore:            cfg.Matching.MinScore,
		MaxResults:          cfg.Matching.MaxResults,
	})
	c.Courses = course.NewMatcher(c.Catalog.CourseGroups(), c.Catalog.GeneralCourses())
	c.Extractor = skill.NewExtractor(c.Catalog.Vocabulary())

	if err := c.openSessions(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

func loadCatalog(cfg config.CatalogConfig) (catalog.Data, error) {
	if cfg.Path == "" {
		return catalog.Default()
	}
	data, err := catalog.LoadFile(cfg.Path)
	if err != nil {
		return catalog.Data{}, fmt.Errorf("load catalog %s: %w", cfg.Path, err)
	}
	return data, nil
}

func (c *Container) openSessions(ctx context.Context) error {
	if !c.Config.Database.Enabled() {
		c.Logger.Printf("[App] DB_HOST not set, sessions kept in memory")
		c.Sessions = repository.NewMemorySessionRepository()
		return nil
	}

	db, err := dbpostgres.Connect(ctx, c.Config.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	c.DB = db

	r := migration.Runner{Dir: c.Config.Database.MigrationsDir, Logger: c.Logger}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if err := c.Metrics.RegisterDB(db.SQLDB()); err != nil {
		c.Logger.Printf("[Metrics] db stats collector not registered err=%v", err)
	}

	c.Sessions = repository.NewPostgresSessionRepository(db)
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
