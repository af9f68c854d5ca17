package config

import (
	"errors"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "skill-match")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("EMBEDDING_PROVIDER", "")
	t.Setenv("DB_HOST", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Embedding.Provider != EmbeddingProviderLocal {
		t.Fatalf("expected local provider, got %q", cfg.Embedding.Provider)
	}
	if cfg.Matching.SimilarityThreshold != 0.1 || cfg.Matching.MinScore != 10.0 || cfg.Matching.MaxResults != 5 {
		t.Fatalf("unexpected matching defaults: %+v", cfg.Matching)
	}
	if cfg.Embedding.Timeout != 15*time.Second {
		t.Fatalf("unexpected embedding timeout: %s", cfg.Embedding.Timeout)
	}
	if cfg.Database.Enabled() {
		t.Fatalf("expected database disabled without DB_HOST")
	}
	if cfg.App.SessionRetention != 720*time.Hour || cfg.App.RequestTimeout != 30*time.Second {
		t.Fatalf("unexpected app defaults: %+v", cfg.App)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_RemoteProviderNeedsAPIKey(t *testing.T) {
	setRequired(t)
	t.Setenv("EMBEDDING_PROVIDER", "openai")
	t.Setenv("EMBEDDING_API_KEY", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_InvalidNumbers(t *testing.T) {
	setRequired(t)
	t.Setenv("MATCH_MIN_SCORE", "ten")

	_, err := Load()
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected errInvalidEnv, got %v", err)
	}
}

func TestLoad_DurationFormats(t *testing.T) {
	setRequired(t)
	t.Setenv("EMBEDDING_TIMEOUT", "3")
	t.Setenv("REDIS_TTL", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Embedding.Timeout != 3*time.Second {
		t.Fatalf("expected 3s, got %s", cfg.Embedding.Timeout)
	}
	if cfg.Redis.TTL != 90*time.Second {
		t.Fatalf("expected 90s, got %s", cfg.Redis.TTL)
	}
}
