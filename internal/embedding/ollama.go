package embedding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
)

const DefaultOllamaModel = "nomic-embed-text"

// OllamaEmbedder calls the /api/embed endpoint of an Ollama server.
type OllamaEmbedder struct {
	client *api.Client
	model  string
}

func NewOllamaEmbedder(host, model string) (*OllamaEmbedder, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	if model == "" {
		model = DefaultOllamaModel
	}

	return &OllamaEmbedder{
		client: api.NewClient(base, &http.Client{Timeout: 30 * time.Second}),
		model:  model,
	}, nil
}

func (e *OllamaEmbedder) Name() string {
	return "ollama-" + e.model
}

func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Embed(ctx, &api.EmbedRequest{
		Model: e.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
		return nil, fmt.Errorf("empty embedding returned")
	}
	return resp.Embeddings[0], nil
}
