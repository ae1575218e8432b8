package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/tahcohcat/gofigure-interrogation/config"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
)

type Client struct {
	client *api.Client
	config *config.OllamaConfig
	logger *logger.Log
}

func NewClient(cfg *config.OllamaConfig) (*Client, error) {
	var client *api.Client
	if cfg.Host == "" {
		c, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		client = c
	} else {
		base, err := url.Parse(cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama host %q: %w", cfg.Host, err)
		}
		client = api.NewClient(base, http.DefaultClient)
	}

	return &Client{
		client: client,
		config: cfg,
		logger: logger.New(),
	}, nil
}

func (c *Client) GenerateResponse(ctx context.Context, system, prompt string) (string, error) {
	shouldStream := false

	req := &api.GenerateRequest{
		Model:  c.config.Model,
		System: system,
		Prompt: prompt,
		Stream: &shouldStream,
		Format: json.RawMessage(`"json"`),
		Options: map[string]interface{}{
			"temperature": 0.9,
			"top_p":       0.9,
		},
	}

	timeoutCtx := ctx
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		timeoutCtx, cancel = context.WithTimeout(ctx, time.Duration(c.config.Timeout)*time.Second)
		defer cancel()
	}

	c.logger.Debug(fmt.Sprintf("Generating response with model %s", c.config.Model))

	var response string
	f := func(g api.GenerateResponse) error {
		response += g.Response
		return nil
	}

	if err := c.client.Generate(timeoutCtx, req, f); err != nil {
		c.logger.WithError(err).Error("Failed to generate response")
		return "", fmt.Errorf("ollama generation failed: %w", err)
	}

	return response, nil
}

func (c *Client) IsModelAvailable(ctx context.Context) error {
	models, err := c.client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	for _, model := range models.Models {
		if model.Name == c.config.Model || model.Model == c.config.Model {
			return nil
		}
	}

	return fmt.Errorf("model %s not found. Available models: %v", c.config.Model, getModelNames(models.Models))
}

func getModelNames(models []api.ListModelResponse) []string {
	names := make([]string, len(models))
	for i, model := range models {
		names[i] = model.Name
	}
	return names
}
