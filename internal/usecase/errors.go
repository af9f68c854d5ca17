package usecase

import (
	"context"
	"errors"
	"fmt"

	"skill-match/internal/domain/matching"
	"skill-match/internal/embedding"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrJobNotFound          = errors.New("job not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
	ErrEmbeddingTimeout     = errors.New("embedding service timed out")
	ErrInternal             = errors.New("internal error")
)

// engineError maps engine and provider failures onto usecase errors,
// keeping the original message for logs.
func engineError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, matching.ErrInvalidInput):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, matching.ErrJobNotFound):
		return fmt.Errorf("%w: %w", ErrJobNotFound, err)
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, embedding.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrEmbeddingTimeout, err)
	case errors.Is(err, embedding.ErrUnavailable):
		return fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}
