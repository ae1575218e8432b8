package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tahcohcat/gofigure-interrogation/config"
	"github.com/tahcohcat/gofigure-interrogation/internal/llm/ollama"
	"github.com/tahcohcat/gofigure-interrogation/internal/llm/openai"
)

func TestNewLLMClient(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.Ollama.Host = "http://localhost:11434"
	cfg.OpenAI.APIKey = "sk-test"

	cfg.LLM.Provider = "ollama"
	c, err := NewLLMClient(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &ollama.Client{}, c)

	cfg.LLM.Provider = "openai"
	c, err = NewLLMClient(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &openai.Client{}, c)

	cfg.LLM.Provider = "gemini"
	_, err = NewLLMClient(ctx, cfg)
	assert.Error(t, err, "gemini needs an API key")

	cfg.LLM.Provider = "claude"
	_, err = NewLLMClient(ctx, cfg)
	assert.ErrorContains(t, err, "unsupported LLM provider")
}
