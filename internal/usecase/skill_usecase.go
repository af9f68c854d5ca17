package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// MaxExtractTextBytes bounds the free text accepted by Extract.
const MaxExtractTextBytes = 64 << 10

type SkillUsecase interface {
	Suggestions(ctx context.Context, query string) ([]string, error)
	Extract(ctx context.Context, text string) ([]string, error)
}

type Skill struct {
	engine    MatchEngine
	extractor SkillExtractor
	cache     Cache
	ttl       time.Duration
	logger    *log.Logger
}

func NewSkillUsecase(engine MatchEngine, extractor SkillExtractor, cache Cache, ttl time.Duration, logger *log.Logger) *Skill {
	return &Skill{engine: engine, extractor: extractor, cache: cache, ttl: ttl, logger: logger}
}

// Suggestions autocompletes a skill name. Results are cached per normalized
// query; the cache is never required.
func (u *Skill) Suggestions(ctx context.Context, query string) ([]string, error) {
	key := SuggestionsCacheKey(query)

	if u.cache != nil {
		var cached []string
		found, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && found {
			if u.logger != nil {
				u.logger.Printf("[Skills] Cache HIT: %s", key)
			}
			return cached, nil
		}
		if u.logger != nil {
			u.logger.Printf("[Skills] Cache MISS: %s", key)
		}
	}

	out := u.engine.SkillSuggestions(query)
	if out == nil {
		out = []string{}
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, u.ttl); err != nil && u.logger != nil {
			u.logger.Printf("[Skills] cache write failed key=%s err=%v", key, err)
		}
	}
	return out, nil
}

// Extract lists the known skills mentioned in free text such as a resume
// or a profile summary.
func (u *Skill) Extract(_ context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if len(text) > MaxExtractTextBytes {
		return nil, fmt.Errorf("%w: text exceeds %d bytes", ErrInvalidInput, MaxExtractTextBytes)
	}
	if u.extractor == nil {
		return []string{}, nil
	}

	out := u.extractor.Extract(text)
	if out == nil {
		out = []string{}
	}
	if u.logger != nil {
		u.logger.Printf("[Skills] extracted count=%d text_bytes=%d", len(out), len(text))
	}
	return out, nil
}
