// Package embedding turns text into fixed-length vectors.
//
// Every provider is safe for concurrent use. Failures surface as ErrUnavailable;
// calls that ran out of time additionally match ErrTimeout.
package embedding

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("embedding unavailable")
	ErrTimeout     = errors.New("embedding timeout")
)

// Provider embeds a single text. Identical input yields an identical vector.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, text string) ([]float64, error)

func (f ProviderFunc) Embed(ctx context.Context, text string) ([]float64, error) {
	return f(ctx, text)
}

func unavailable(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, provider, err)
}
