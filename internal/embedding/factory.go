package embedding

import (
	"context"
	"fmt"

	"skill-match/internal/config"
)

// New builds the raw provider selected by the configuration.
func New(ctx context.Context, cfg config.EmbeddingConfig) (Provider, error) {
	switch cfg.Provider {
	case "", config.EmbeddingProviderLocal:
		return NewLocal(cfg.Dimension), nil
	case config.EmbeddingProviderOpenAI:
		return NewOpenAI(OpenAIConfig{
			APIKey:    cfg.APIKey,
			BaseURL:   cfg.BaseURL,
			Model:     cfg.Model,
			Dimension: cfg.Dimension,
		})
	case config.EmbeddingProviderGemini:
		return NewGemini(ctx, GeminiConfig{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			Dimension: cfg.Dimension,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// Namespace identifies the vector space of a configuration; vectors from
// different namespaces are never mixed in the cache.
func Namespace(cfg config.EmbeddingConfig) string {
	provider := cfg.Provider
	if provider == "" {
		provider = config.EmbeddingProviderLocal
	}
	model := cfg.Model
	if model == "" {
		model = "default"
	}
	return fmt.Sprintf("%s:%s:%d", provider, model, cfg.Dimension)
}

func GuardConfigFrom(cfg config.EmbeddingConfig) GuardConfig {
	name := cfg.Provider
	if name == "" {
		name = config.EmbeddingProviderLocal
	}
	return GuardConfig{
		Name:    name,
		Timeout: cfg.Timeout,
		Breaker: BreakerConfig{
			Enabled:     cfg.BreakerEnabled,
			MaxRequests: cfg.BreakerMaxRequests,
			Interval:    cfg.BreakerInterval,
			Timeout:     cfg.BreakerTimeout,
			MinRequests: cfg.BreakerMinRequests,
			FailureRate: cfg.BreakerFailureRate,
		},
	}
}
