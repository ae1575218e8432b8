package llm

import (
	"context"
)

// LLM defines the interface for language model providers
type LLM interface {

	// GenerateResponse asks for a JSON answer to prompt under the given
	// system instructions
	GenerateResponse(ctx context.Context, system, prompt string) (string, error)

	// IsModelAvailable checks if the configured model is available
	IsModelAvailable(ctx context.Context) error
}
