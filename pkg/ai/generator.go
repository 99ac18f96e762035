package ai

import "context"

// Generator defines the interface for text generation with a system prompt.
type Generator interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}
