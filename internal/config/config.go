package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Embedding EmbeddingConfig
	Matching  MatchingConfig
	Catalog   CatalogConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	AppName          string
	Environment      string
	HTTPPort         string
	RequestTimeout   time.Duration
	SessionRetention time.Duration
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	MigrationsDir string
}

// Enabled reports whether a Postgres host is configured.
func (c DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(c.DBHost) != ""
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
	Enabled  bool
}

type EmbeddingConfig struct {
	Provider          string
	Model             string
	APIKey            string
	BaseURL           string
	Dimension         int
	Timeout           time.Duration
	Concurrency       int
	RequestsPerSecond float64

	BreakerEnabled     bool
	BreakerMaxRequests uint32
	BreakerInterval    time.Duration
	BreakerTimeout     time.Duration
	BreakerMinRequests uint32
	BreakerFailureRate float64
}

type MatchingConfig struct {
	SimilarityThreshold float64
	MinScore            float64
	MaxResults          int
}

type CatalogConfig struct {
	Path string
}

type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

const (
	EmbeddingProviderLocal  = "local"
	EmbeddingProviderOpenAI = "openai"
	EmbeddingProviderGemini = "gemini"
)

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optFloat := func(key string, def float64) float64 {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		if secs, err := strconv.Atoi(raw); err == nil {
			return time.Duration(secs) * time.Second
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:          req("APP_NAME"),
		Environment:      req("APP_ENV"),
		HTTPPort:         req("HTTP_PORT"),
		RequestTimeout:   optDuration("APP_REQUEST_TIMEOUT", 30*time.Second),
		SessionRetention: optDuration("SESSION_RETENTION", 30*24*time.Hour),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                optDefault("DB_PORT", "5432"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             optDefault("DB_SSL_MODE", "disable"),
		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
		MigrationsDir:         optDefault("DB_MIGRATIONS_DIR", "migrations"),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optDuration("REDIS_TTL", 600*time.Second),
		Enabled:  optBool("REDIS_ENABLED", true),
	}

	cfg.Embedding = EmbeddingConfig{
		Provider:           strings.ToLower(optDefault("EMBEDDING_PROVIDER", EmbeddingProviderLocal)),
		Model:              opt("EMBEDDING_MODEL"),
		APIKey:             opt("EMBEDDING_API_KEY"),
		BaseURL:            opt("EMBEDDING_BASE_URL"),
		Dimension:          optInt("EMBEDDING_DIMENSION", 0),
		Timeout:            optDuration("EMBEDDING_TIMEOUT", 15*time.Second),
		Concurrency:        optInt("EMBEDDING_CONCURRENCY", 4),
		RequestsPerSecond:  optFloat("EMBEDDING_RPS", 0),
		BreakerEnabled:     optBool("EMBEDDING_BREAKER_ENABLED", true),
		BreakerMaxRequests: uint32(optInt("EMBEDDING_BREAKER_MAX_REQUESTS", 3)),
		BreakerInterval:    optDuration("EMBEDDING_BREAKER_INTERVAL", 60*time.Second),
		BreakerTimeout:     optDuration("EMBEDDING_BREAKER_TIMEOUT", 30*time.Second),
		BreakerMinRequests: uint32(optInt("EMBEDDING_BREAKER_MIN_REQUESTS", 5)),
		BreakerFailureRate: optFloat("EMBEDDING_BREAKER_FAILURE_RATE", 0.6),
	}
	switch cfg.Embedding.Provider {
	case EmbeddingProviderLocal, EmbeddingProviderOpenAI, EmbeddingProviderGemini:
	default:
		invalid = append(invalid, "EMBEDDING_PROVIDER")
	}
	if cfg.Embedding.Provider != EmbeddingProviderLocal && cfg.Embedding.APIKey == "" {
		missing = append(missing, "EMBEDDING_API_KEY")
	}

	cfg.Matching = MatchingConfig{
		SimilarityThreshold: optFloat("MATCH_SIMILARITY_THRESHOLD", 0.1),
		MinScore:            optFloat("MATCH_MIN_SCORE", 10.0),
		MaxResults:          optInt("MATCH_MAX_RESULTS", 5),
	}

	cfg.Catalog = CatalogConfig{
		Path: opt("CATALOG_PATH"),
	}

	cfg.RateLimit = RateLimitConfig{
		RequestsPerMinute: optInt("RATE_LIMIT_PER_MIN", 120),
		Burst:             optInt("RATE_LIMIT_BURST", 20),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
