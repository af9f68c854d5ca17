package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"
)

// Cache is the subset of the JSON cache the decorator needs.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Cached stores vectors keyed by the hash of their text, so a changed text
// always misses and is re-embedded.
type Cached struct {
	next      Provider
	cache     Cache
	namespace string
	ttl       time.Duration
	logger    *log.Logger
}

func NewCached(next Provider, cache Cache, namespace string, ttl time.Duration, logger *log.Logger) *Cached {
	if logger == nil {
		logger = log.Default()
	}
	return &Cached{next: next, cache: cache, namespace: namespace, ttl: ttl, logger: logger}
}

func (c *Cached) Embed(ctx context.Context, text string) ([]float64, error) {
	if c.cache == nil {
		return c.next.Embed(ctx, text)
	}

	key := CacheKey(c.namespace, text)

	var vec []float64
	hit, err := c.cache.GetJSON(ctx, key, &vec)
	if err != nil {
		c.logger.Printf("[Embedding] cache get failed key=%s err=%v", key, err)
	}
	if hit && len(vec) > 0 {
		return vec, nil
	}

	vec, err = c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.cache.SetJSON(ctx, key, vec, c.ttl); err != nil {
		c.logger.Printf("[Embedding] cache set failed key=%s err=%v", key, err)
	}
	return vec, nil
}

func CacheKey(namespace, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "embed:" + namespace + ":" + hex.EncodeToString(sum[:])
}
