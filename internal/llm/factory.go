package llm

import (
	"context"
	"fmt"

	"github.com/tahcohcat/gofigure-interrogation/config"
	"github.com/tahcohcat/gofigure-interrogation/internal/llm/gemini"
	"github.com/tahcohcat/gofigure-interrogation/internal/llm/ollama"
	"github.com/tahcohcat/gofigure-interrogation/internal/llm/openai"
)

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// NewLLMClient creates a new LLM client based on the configuration
func NewLLMClient(ctx context.Context, cfg *config.Config) (LLM, error) {
	switch Provider(cfg.LLM.Provider) {
	case ProviderGemini:
		return gemini.NewClient(ctx, &cfg.Gemini)
	case ProviderOllama:
		return ollama.NewClient(&cfg.Ollama)
	case ProviderOpenAI:
		return openai.NewClient(&cfg.OpenAI)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLM.Provider)
	}
}
