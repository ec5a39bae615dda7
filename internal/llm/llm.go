package llm

import (
	"context"
	"errors"
)

// Client abstracts text-generation providers. The model is passed per call so
// callers can walk a fallback list over one client.
type Client interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, model, prompt string) (string, error) {
	_ = ctx
	_ = model
	_ = prompt
	return "", ErrNotImplemented
}
