package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"counsel-backend/internal/llm"
)

// ErrExhausted is returned when every model in the fallback list failed.
var ErrExhausted = errors.New("all generation models failed")

// Generator produces a structured career report via an injected text-generation
// client and an ordered model fallback list. Models are tried in sequence until
// one succeeds; there is no backoff and no partial-success handling.
type Generator struct {
	client llm.Client
	models []string
}

// NewGenerator constructs a Generator. models is the ordered fallback list.
func NewGenerator(client llm.Client, models []string) *Generator {
	return &Generator{client: client, models: models}
}

// Generate builds the prompt, walks the fallback list, and parses the first
// successful response. The raw text is returned alongside the parse so callers
// can persist it even when the heuristic parse yields little.
func (g *Generator) Generate(ctx context.Context, b Bundle) (Analysis, string, error) {
	if g == nil || g.client == nil {
		return Analysis{}, "", errors.New("generator not configured")
	}
	if len(g.models) == 0 {
		return Analysis{}, "", errors.New("no generation models configured")
	}

	prompt := BuildPrompt(b)

	var attempts []error
	for i, model := range g.models {
		text, err := g.client.Complete(ctx, model, prompt)
		if err == nil && strings.TrimSpace(text) == "" {
			err = errors.New("empty response")
		}
		if err != nil {
			log.Printf("report generation attempt=%d model=%s error=%v", i+1, model, err)
			attempts = append(attempts, fmt.Errorf("%s: %w", model, err))
			continue
		}
		return Parse(text), text, nil
	}

	return Analysis{}, "", fmt.Errorf("%w: %v", ErrExhausted, errors.Join(attempts...))
}

// Models returns the configured fallback list, for diagnostics.
func (g *Generator) Models() []string {
	out := make([]string, len(g.models))
	copy(out, g.models)
	return out
}
