package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/tahcohcat/gofigure-interrogation/config"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var defaultModels = []string{"gemini-2.5-flash", "gemini-2.0-flash-001"}

type generateFunc func(ctx context.Context, model, system, prompt string) (string, error)

// Client talks to Gemini, walking the configured models in order. A quota
// error waits and retries the same model once; an unknown model moves on.
type Client struct {
	client    *genai.Client
	models    []string
	retryWait time.Duration
	timeout   time.Duration
	generate  generateFunc
	sleep     func(ctx context.Context, d time.Duration) error
	logger    *logger.Log
}

func NewClient(ctx context.Context, cfg *config.GeminiConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	c := newClient(cfg)
	c.client = client
	c.generate = c.callModel
	return c, nil
}

func newClient(cfg *config.GeminiConfig) *Client {
	models := cfg.Models
	if len(models) == 0 {
		models = defaultModels
	}

	return &Client{
		models:    models,
		retryWait: time.Duration(cfg.RetryWait) * time.Second,
		timeout:   time.Duration(cfg.Timeout) * time.Second,
		sleep:     sleepContext,
		logger:    logger.New(),
	}
}

func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) GenerateResponse(ctx context.Context, system, prompt string) (string, error) {
	var lastErr error

	for _, model := range c.models {
		c.logger.Debug(fmt.Sprintf("Attempting with model %s", model))

		text, err := c.generate(ctx, model, system, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		switch {
		case isQuotaError(err):
			c.logger.Warn(fmt.Sprintf("Model %s is busy (quota limit), waiting %s to retry", model, c.retryWait))
			if err := c.sleep(ctx, c.retryWait); err != nil {
				return "", err
			}

			text, err = c.generate(ctx, model, system, prompt)
			if err == nil {
				return text, nil
			}
			lastErr = err
			c.logger.WithError(err).Warn("Retry failed, moving to next model")
		case isNotFound(err):
			c.logger.Warn(fmt.Sprintf("Model %s not found, trying next", model))
		default:
			return "", fmt.Errorf("gemini generation failed: %w", err)
		}
	}

	return "", fmt.Errorf("all gemini models failed: %w", lastErr)
}

func (c *Client) IsModelAvailable(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("gemini client not initialised")
	}

	var lastErr error
	for _, name := range c.models {
		if _, err := c.client.GenerativeModel(name).Info(ctx); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("no configured gemini model is available: %w", lastErr)
}

func (c *Client) callModel(ctx context.Context, name, system, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	model := c.client.GenerativeModel(name)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.9)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	text := getText(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from %s", name)
	}
	return text, nil
}

func getText(resp *genai.GenerateContentResponse) string {
	var text string
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text += string(txt)
			}
		}
	}
	return text
}

func isQuotaError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return true
	}
	return strings.Contains(err.Error(), "404")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
