package llm

import (
	"context"
	"errors"
)

// Client abstracts generative-language-model providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client when no provider
// (or API key) was configured. Callers degrade or surface per their own
// failure policy.
var ErrNotConfigured = errors.New("llm not configured")

// PlaceholderClient is the stand-in wired when AI features are disabled.
type PlaceholderClient struct{}

// Complete always fails with ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}

var _ Client = PlaceholderClient{}
